package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanToggleCompletedSlotDeletes(t *testing.T) {
	logID := primitive.NewObjectID()
	slot := Slot{SetNumber: 1, Completed: true, LogID: &logID}

	plan, err := PlanToggle(slot, "", "")

	require.NoError(t, err)
	assert.Equal(t, ActionDelete, plan.Action)
	assert.Equal(t, logID, plan.LogID)
}

func TestPlanToggleCompletedSlotWithoutLogID(t *testing.T) {
	_, err := PlanToggle(Slot{SetNumber: 1, Completed: true}, "10", "50")
	assert.ErrorIs(t, err, ErrMissingLogID)

	nilID := primitive.NilObjectID
	_, err = PlanToggle(Slot{SetNumber: 1, Completed: true, LogID: &nilID}, "10", "50")
	assert.ErrorIs(t, err, ErrMissingLogID)
}

func TestPlanToggleOpenSlotCreates(t *testing.T) {
	plan, err := PlanToggle(Slot{SetNumber: 2}, "10", "52.5")

	require.NoError(t, err)
	assert.Equal(t, ActionCreate, plan.Action)
	assert.Equal(t, 10, plan.Reps)
	assert.Equal(t, 52.5, plan.WeightKg)
}

func TestPlanToggleTrimsInput(t *testing.T) {
	plan, err := PlanToggle(Slot{SetNumber: 1}, " 8 ", " 40 ")

	require.NoError(t, err)
	assert.Equal(t, 8, plan.Reps)
	assert.Equal(t, 40.0, plan.WeightKg)
}

func TestPlanToggleRejectsBadReps(t *testing.T) {
	cases := []string{"", "abc", "8.5", "-1"}
	for _, reps := range cases {
		_, err := PlanToggle(Slot{SetNumber: 1}, reps, "50")
		assert.ErrorIs(t, err, ErrInvalidReps, "reps input %q", reps)
	}
}

func TestPlanToggleRejectsBadWeight(t *testing.T) {
	cases := []string{"", "heavy", "-10"}
	for _, weight := range cases {
		_, err := PlanToggle(Slot{SetNumber: 1}, "10", weight)
		assert.ErrorIs(t, err, ErrInvalidWeight, "weight input %q", weight)
	}
}
