package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionLog records one performed set. SetNumber is the 1-based slot index
// within the exercise for that date; (userId, exerciseId, date, setNumber)
// is unique. Rows are created and deleted per toggle, never updated.
type SessionLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Date       time.Time          `bson:"date" json:"date"` // Calendar day, midnight UTC
	SetNumber  int                `bson:"setNumber" json:"setNumber"`
	Reps       int                `bson:"reps" json:"reps"`
	WeightKg   float64            `bson:"weightKg" json:"weightKg"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// LogDay truncates a timestamp to the calendar day it falls on, in UTC.
// Every date stored on or compared against a SessionLog goes through this.
func LogDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
