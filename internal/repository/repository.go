package repository

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate entry")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ExerciseRepository is the read-mostly exercise catalog accessor. Create
// exists only for seeding; the tracking flow never writes the catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// List returns the whole catalog when muscleGroupIDs is empty, otherwise
	// only exercises belonging to one of the given groups.
	List(ctx context.Context, muscleGroupIDs []primitive.ObjectID) ([]domain.Exercise, error)
	CreateMuscleGroup(ctx context.Context, group *domain.MuscleGroup) (primitive.ObjectID, error)
	ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
	CountMuscleGroups(ctx context.Context) (int64, error)
}

// PlanRepository covers the plan document plus the per-weekday prescription
// documents hanging off it.
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetPlanByUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)

	CreateDay(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error)
	GetDaysByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutDay, error)
	GetDayByID(ctx context.Context, dayID primitive.ObjectID) (*domain.WorkoutDay, error)
	DeleteDaysForUser(ctx context.Context, userID primitive.ObjectID) error

	AddDayExercise(ctx context.Context, dayID primitive.ObjectID, entry domain.WorkoutDayExercise) (primitive.ObjectID, error)
	UpdateDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID, sets int, reps string) error
	SwapExercise(ctx context.Context, dayExerciseID, newExerciseID primitive.ObjectID) error
	DeleteDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID) error
	// ReplaceDayExercises swaps out a day's whole prescription in one write
	// (template swap).
	ReplaceDayExercises(ctx context.Context, dayID primitive.ObjectID, entries []domain.WorkoutDayExercise) error
}

// LogRepository defines the interface for interacting with performed-set logs.
type LogRepository interface {
	Create(ctx context.Context, log *domain.SessionLog) (primitive.ObjectID, error)
	// ListByUserAndDate returns an empty slice, not an error, when no sets
	// were logged for the date.
	ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.SessionLog, error)
	Delete(ctx context.Context, logID, userID primitive.ObjectID) error
}

// TemplateRepository defines the interface for whole-day workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	List(ctx context.Context) ([]domain.WorkoutTemplate, error)
}
