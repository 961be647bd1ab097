package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account created during onboarding. The biometric
// fields are captured once by the onboarding wizard and drive the
// set/rep scheme used when a plan is generated.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Age          int                `bson:"age" json:"age"`
	HeightCm     int                `bson:"heightCm" json:"heightCm"`
	WeightKg     float64            `bson:"weightKg" json:"weightKg"`
	Gender       string             `bson:"gender" json:"gender"`
	BodyType     int                `bson:"bodyType" json:"bodyType"` // 1 (ectomorph) .. 8 (endomorph)
	Goal         int                `bson:"goal" json:"goal"`         // 1 (endurance) .. 8 (strength)
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
