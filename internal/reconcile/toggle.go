package reconcile

import (
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validation errors surfaced before any store call is made.
var (
	ErrInvalidReps   = errors.New("reps must be a whole number")
	ErrInvalidWeight = errors.New("weight must be a number")
	ErrMissingLogID  = errors.New("completed slot has no log ID")
)

// Action says which single store mutation a toggle implies.
type Action int

const (
	ActionCreate Action = iota // Insert a new log for this slot
	ActionDelete               // Remove the slot's existing log
)

// TogglePlan is the store intent computed from a toggle. Exactly one of the
// two shapes is populated: Delete carries LogID, Create carries Reps/WeightKg.
type TogglePlan struct {
	Action   Action
	LogID    primitive.ObjectID
	Reps     int
	WeightKg float64
}

// PlanToggle computes the single mutation a toggle on the given slot implies.
// A completed slot toggles off by deleting its log. An open slot toggles on
// by creating a log from the typed reps and weight, which must parse as an
// integer and a float respectively; parse failure rejects the toggle with no
// mutation planned.
func PlanToggle(slot Slot, repsInput, weightInput string) (TogglePlan, error) {
	if slot.Completed {
		if slot.LogID == nil || *slot.LogID == primitive.NilObjectID {
			return TogglePlan{}, ErrMissingLogID
		}
		return TogglePlan{Action: ActionDelete, LogID: *slot.LogID}, nil
	}

	reps, err := strconv.Atoi(strings.TrimSpace(repsInput))
	if err != nil || reps < 0 {
		return TogglePlan{}, ErrInvalidReps
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(weightInput), 64)
	if err != nil || weight < 0 {
		return TogglePlan{}, ErrInvalidWeight
	}

	return TogglePlan{Action: ActionCreate, Reps: reps, WeightKg: weight}, nil
}
