package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan holds the high-level plan parameters chosen at onboarding.
// A user has at most one plan (unique index on userId).
type WorkoutPlan struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutType     string             `bson:"workoutType" json:"workoutType"` // e.g. "gym", "home"
	SessionsPerWeek int                `bson:"sessionsPerWeek" json:"sessionsPerWeek"`
	HoursPerSession float64            `bson:"hoursPerSession" json:"hoursPerSession"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutDayExercise is one prescription line within a day: which exercise,
// how many set slots, and a target rep scheme. Sets is a count, not a
// collection; the reconciler expands it into slots per calendar date.
type WorkoutDayExercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       string             `bson:"reps" json:"reps"` // May be a range like "8-12"
}

// WorkoutDay is one weekday's prescription. An empty Exercises slice marks a
// rest day. DayOfWeek is unique per user.
type WorkoutDay struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	DayOfWeek string               `bson:"dayOfWeek" json:"dayOfWeek"` // "Monday" .. "Sunday"
	Exercises []WorkoutDayExercise `bson:"exercises" json:"exercises"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// WeekDays lists the seven day names in schedule order.
var WeekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName maps a calendar date to its weekday name as stored on WorkoutDay.
func DayName(date time.Time) string {
	return date.Weekday().String()
}
