package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"math/rand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetRepScheme maps a user's goal to the prescription scheme used both at
// plan generation and at template swap: endurance trains high reps with few
// sets, strength the opposite.
func SetRepScheme(goal int) (sets int, reps string) {
	switch {
	case goal <= 3: // Endurance
		return 3, "12-15"
	case goal <= 6: // Hypertrophy
		return 4, "8-12"
	default: // Strength
		return 5, "4-6"
	}
}

// splitDay is one weekday of a training split: which muscle groups to draw
// from and how many exercises to sample. Empty groups marks a rest day.
type splitDay struct {
	day    string
	groups []string
	count  int
}

var (
	pushGroups     = []string{"Chest", "Shoulders", "Triceps"}
	pullGroups     = []string{"Back", "Biceps"}
	legGroups      = []string{"Legs", "Abs"}
	fullBodyGroups = []string{"Chest", "Back", "Legs", "Shoulders"}
	upperGroups    = []string{"Chest", "Back", "Shoulders", "Biceps", "Triceps"}
)

// WeeklySplit picks a standard training split for the requested session
// count. Days not covered by the split are stored as rest days so every
// weekday has a document.
func WeeklySplit(sessionsPerWeek int) []splitDay {
	rest := func(day string) splitDay { return splitDay{day: day} }

	switch {
	case sessionsPerWeek >= 6: // Push/Pull/Legs twice over
		return []splitDay{
			{"Monday", pushGroups, 5},
			{"Tuesday", pullGroups, 5},
			{"Wednesday", legGroups, 5},
			{"Thursday", pushGroups, 5},
			{"Friday", pullGroups, 5},
			{"Saturday", legGroups, 5},
			rest("Sunday"),
		}
	case sessionsPerWeek == 5:
		return []splitDay{
			{"Monday", pushGroups, 6},
			{"Tuesday", pullGroups, 5},
			{"Wednesday", legGroups, 5},
			rest("Thursday"),
			{"Friday", upperGroups, 5},
			{"Saturday", legGroups, 5},
			rest("Sunday"),
		}
	case sessionsPerWeek == 4: // Upper/Lower
		return []splitDay{
			{"Monday", upperGroups, 6},
			{"Tuesday", legGroups, 5},
			rest("Wednesday"),
			{"Thursday", upperGroups, 6},
			{"Friday", legGroups, 5},
			rest("Saturday"),
			rest("Sunday"),
		}
	case sessionsPerWeek == 3: // Full body
		return []splitDay{
			{"Monday", fullBodyGroups, 5},
			rest("Tuesday"),
			{"Wednesday", fullBodyGroups, 5},
			rest("Thursday"),
			{"Friday", fullBodyGroups, 5},
			rest("Saturday"),
			rest("Sunday"),
		}
	default: // 1-2 sessions
		return []splitDay{
			{"Monday", fullBodyGroups, 5},
			rest("Tuesday"),
			{"Wednesday", fullBodyGroups, 5},
			rest("Thursday"),
			rest("Friday"),
			rest("Saturday"),
			rest("Sunday"),
		}
	}
}

// planGenerator builds and persists a user's weekly schedule from their plan
// parameters and goal.
type planGenerator struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	rng          *rand.Rand
}

func newPlanGenerator(planRepo repository.PlanRepository, exerciseRepo repository.ExerciseRepository, rng *rand.Rand) *planGenerator {
	return &planGenerator{planRepo: planRepo, exerciseRepo: exerciseRepo, rng: rng}
}

// Generate replaces any existing schedule for the user with a freshly
// generated one: one WorkoutDay per weekday, populated per the split and the
// goal's set/rep scheme.
func (g *planGenerator) Generate(ctx context.Context, userID primitive.ObjectID, goal, sessionsPerWeek int) error {
	// Clear any pre-existing schedule so regeneration never duplicates days.
	if err := g.planRepo.DeleteDaysForUser(ctx, userID); err != nil {
		return err
	}

	groups, err := g.exerciseRepo.ListMuscleGroups(ctx)
	if err != nil {
		return err
	}
	groupIDByName := make(map[string]primitive.ObjectID, len(groups))
	for _, group := range groups {
		groupIDByName[group.Name] = group.ID
	}

	sets, reps := SetRepScheme(goal)

	for _, split := range WeeklySplit(sessionsPerWeek) {
		entries := []domain.WorkoutDayExercise{}
		if len(split.groups) > 0 {
			exercises, err := g.sampleExercises(ctx, split.groups, split.count, groupIDByName)
			if err != nil {
				return err
			}
			for _, exercise := range exercises {
				entries = append(entries, domain.WorkoutDayExercise{
					ExerciseID: exercise.ID,
					Sets:       sets,
					Reps:       reps,
				})
			}
		}

		day := &domain.WorkoutDay{
			UserID:    userID,
			DayOfWeek: split.day,
			Exercises: entries,
		}
		if _, err := g.planRepo.CreateDay(ctx, day); err != nil {
			return err
		}
	}

	return nil
}

// sampleExercises draws up to count random exercises from the named muscle
// groups.
func (g *planGenerator) sampleExercises(ctx context.Context, groupNames []string, count int, groupIDByName map[string]primitive.ObjectID) ([]domain.Exercise, error) {
	groupIDs := make([]primitive.ObjectID, 0, len(groupNames))
	for _, name := range groupNames {
		if id, ok := groupIDByName[name]; ok {
			groupIDs = append(groupIDs, id)
		}
	}
	if len(groupIDs) == 0 {
		return nil, nil
	}

	exercises, err := g.exerciseRepo.List(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	g.rng.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})
	if len(exercises) > count {
		exercises = exercises[:count]
	}
	return exercises, nil
}
