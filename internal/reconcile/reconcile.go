// Package reconcile merges a day's prescription with the sets already logged
// for a calendar date, producing the editable slot list the tracking view
// renders. Everything in this package is a pure function of its inputs; the
// session controller re-runs it after every date change or confirmed
// mutation.
package reconcile

import (
	"alcyxob/workout-tracker/internal/domain"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slot is one set-number's editable state: the prescription slot, optionally
// pre-filled from a matching log. Weight and Reps stay strings here because
// they back editable form fields; parsing happens on toggle, not on display.
type Slot struct {
	SetNumber int                 `json:"setNumber"`
	Weight    string              `json:"weight"`
	Reps      string              `json:"reps"`
	Completed bool                `json:"completed"`
	LogID     *primitive.ObjectID `json:"logId,omitempty"`
}

// Slots expands a prescription's set count into one slot per set-number in
// 1..sets, marking a slot completed when a log with that set-number exists.
// Logs are matched by first occurrence; logs whose set-number falls outside
// [1, sets] are ignored. The logs slice need not be pre-filtered by exercise
// date ordering and is never mutated.
func Slots(sets int, logs []domain.SessionLog) []Slot {
	if sets < 1 {
		return []Slot{}
	}

	slots := make([]Slot, 0, sets)
	for n := 1; n <= sets; n++ {
		slot := Slot{SetNumber: n}
		for i := range logs {
			if logs[i].SetNumber != n {
				continue
			}
			id := logs[i].ID
			slot.Weight = formatWeight(logs[i].WeightKg)
			slot.Reps = strconv.Itoa(logs[i].Reps)
			slot.Completed = true
			slot.LogID = &id
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// ForExercise filters a mixed logs-for-date slice down to one exercise and
// reconciles it against that exercise's prescription.
func ForExercise(entry domain.WorkoutDayExercise, logs []domain.SessionLog) []Slot {
	matching := make([]domain.SessionLog, 0, len(logs))
	for _, l := range logs {
		if l.ExerciseID == entry.ExerciseID {
			matching = append(matching, l)
		}
	}
	return Slots(entry.Sets, matching)
}

// formatWeight renders a stored weight the way it was typed: "50" rather
// than "50.000000", but "52.5" keeps its fraction.
func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
