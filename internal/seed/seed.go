// Package seed populates an empty database with the built-in exercise
// catalog and whole-day templates. Seeding is idempotent: a database that
// already has muscle groups is left untouched.
package seed

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seedExercise struct {
	name  string
	typ   string
	group string
}

var muscleGroups = []string{
	"Chest", "Back", "Legs", "Shoulders",
	"Biceps", "Triceps", "Abs", "Cardio",
}

var exercises = []seedExercise{
	// Chest
	{"Bench Press", "Compound", "Chest"},
	{"Incline Dumbbell Press", "Compound", "Chest"},
	{"Dumbbell Flyes", "Isolation", "Chest"},
	{"Push-ups", "Compound", "Chest"},
	{"Cable Crossovers", "Isolation", "Chest"},

	// Back
	{"Deadlifts", "Compound", "Back"},
	{"Pull-ups", "Compound", "Back"},
	{"Bent-Over Barbell Rows", "Compound", "Back"},
	{"Lat Pulldowns", "Compound", "Back"},
	{"Seated Cable Rows", "Compound", "Back"},

	// Legs
	{"Squats", "Compound", "Legs"},
	{"Leg Press", "Compound", "Legs"},
	{"Lunges", "Compound", "Legs"},
	{"Leg Curls", "Isolation", "Legs"},
	{"Leg Extensions", "Isolation", "Legs"},
	{"Calf Raises", "Isolation", "Legs"},

	// Shoulders
	{"Overhead Press", "Compound", "Shoulders"},
	{"Dumbbell Lateral Raises", "Isolation", "Shoulders"},
	{"Face Pulls", "Isolation", "Shoulders"},
	{"Arnold Press", "Compound", "Shoulders"},

	// Biceps
	{"Barbell Curls", "Isolation", "Biceps"},
	{"Dumbbell Hammer Curls", "Isolation", "Biceps"},
	{"Preacher Curls", "Isolation", "Biceps"},

	// Triceps
	{"Tricep Dips", "Compound", "Triceps"},
	{"Skull Crushers", "Isolation", "Triceps"},
	{"Tricep Pushdowns", "Isolation", "Triceps"},

	// Abs
	{"Crunches", "Isolation", "Abs"},
	{"Leg Raises", "Isolation", "Abs"},
	{"Plank", "Isolation", "Abs"},

	// Cardio
	{"Treadmill Running", "Cardio", "Cardio"},
	{"Cycling", "Cardio", "Cardio"},
	{"Jump Rope", "Cardio", "Cardio"},
}

var templates = map[string][]string{
	"Push Day":    {"Bench Press", "Overhead Press", "Incline Dumbbell Press", "Tricep Dips", "Dumbbell Lateral Raises"},
	"Pull Day":    {"Deadlifts", "Pull-ups", "Bent-Over Barbell Rows", "Lat Pulldowns", "Barbell Curls"},
	"Leg Day":     {"Squats", "Leg Press", "Lunges", "Leg Curls", "Calf Raises"},
	"Chest Focus": {"Bench Press", "Incline Dumbbell Press", "Dumbbell Flyes", "Push-ups", "Cable Crossovers"},
	"Back Focus":  {"Pull-ups", "Bent-Over Barbell Rows", "Seated Cable Rows", "Lat Pulldowns", "Face Pulls"},
}

// Run seeds the catalog and templates if the database is empty.
func Run(ctx context.Context, exerciseRepo repository.ExerciseRepository, templateRepo repository.TemplateRepository) error {
	count, err := exerciseRepo.CountMuscleGroups(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting muscle groups: %w", err)
	}
	if count > 0 {
		return nil
	}

	groupIDs := make(map[string]primitive.ObjectID, len(muscleGroups))
	for _, name := range muscleGroups {
		id, err := exerciseRepo.CreateMuscleGroup(ctx, &domain.MuscleGroup{Name: name})
		if err != nil {
			return fmt.Errorf("seed: creating muscle group %q: %w", name, err)
		}
		groupIDs[name] = id
	}

	exerciseIDs := make(map[string]primitive.ObjectID, len(exercises))
	for _, entry := range exercises {
		groupID, ok := groupIDs[entry.group]
		if !ok {
			continue
		}
		id, err := exerciseRepo.Create(ctx, &domain.Exercise{
			Name:          entry.name,
			Type:          entry.typ,
			MuscleGroupID: groupID,
		})
		if err != nil {
			return fmt.Errorf("seed: creating exercise %q: %w", entry.name, err)
		}
		exerciseIDs[entry.name] = id
	}

	for name, members := range templates {
		ids := make([]primitive.ObjectID, 0, len(members))
		for _, member := range members {
			if id, ok := exerciseIDs[member]; ok {
				ids = append(ids, id)
			}
		}
		if _, err := templateRepo.Create(ctx, &domain.WorkoutTemplate{Name: name, ExerciseIDs: ids}); err != nil {
			return fmt.Errorf("seed: creating template %q: %w", name, err)
		}
	}

	return nil
}
