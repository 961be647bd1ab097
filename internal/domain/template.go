package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutTemplate is a predefined whole-day exercise bundle, e.g. "Push Day".
// Swapping a template onto a WorkoutDay replaces that day's prescription
// wholesale; sets/reps are derived from the user's goal at swap time.
type WorkoutTemplate struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"` // Unique
	ExerciseIDs []primitive.ObjectID `bson:"exerciseIds" json:"exerciseIds"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}
