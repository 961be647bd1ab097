package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = errors.New("workout plan not found")
	ErrPlanAlreadyExists   = errors.New("user already has a workout plan")
	ErrDayNotFound         = errors.New("workout day not found")
	ErrDayExerciseNotFound = errors.New("exercise entry not found in plan")
	ErrUserNotFound        = errors.New("user not found")
	ErrValidationFailed    = errors.New("validation failed")
)

// DayExerciseDetail is one prescription entry enriched with its catalog
// exercise, the shape the tracking view consumes.
type DayExerciseDetail struct {
	domain.WorkoutDayExercise
	Exercise *domain.Exercise `json:"exercise"`
}

// ScheduleDay is one weekday of the resolved schedule.
type ScheduleDay struct {
	ID        primitive.ObjectID  `json:"id"`
	DayOfWeek string              `json:"dayOfWeek"`
	Exercises []DayExerciseDetail `json:"exercises"`
}

// PlanView is the plan accessor's read shape: plan parameters plus the
// weekly schedule keyed by day name.
type PlanView struct {
	PlanDetails    domain.WorkoutPlan     `json:"planDetails"`
	WeeklySchedule map[string]ScheduleDay `json:"weeklySchedule"`
}

// PlanService is the plan store accessor: fetch/create the weekly plan and
// mutate prescriptions within it.
type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, workoutType string, sessionsPerWeek int, hoursPerSession float64) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error)

	AddExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID, sets int, reps string) (*domain.WorkoutDayExercise, error)
	UpdateDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID, sets int, reps string) error
	SwapExercise(ctx context.Context, dayExerciseID, newExerciseID primitive.ObjectID) error
	RemoveExercise(ctx context.Context, dayExerciseID primitive.ObjectID) error
	SwapDayTemplate(ctx context.Context, dayID, templateID, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type planService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	templateRepo repository.TemplateRepository
	userRepo     repository.UserRepository
	generator    *planGenerator
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	exerciseRepo repository.ExerciseRepository,
	templateRepo repository.TemplateRepository,
	userRepo repository.UserRepository,
) PlanService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
		generator:    newPlanGenerator(planRepo, exerciseRepo, rng),
	}
}

// CreatePlan stores the plan parameters and generates the user's weekly
// schedule from them in one step.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, workoutType string, sessionsPerWeek int, hoursPerSession float64) (*domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if sessionsPerWeek < 1 || sessionsPerWeek > 7 {
		return nil, ErrValidationFailed
	}
	if workoutType == "" {
		workoutType = "gym"
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:          userID,
		WorkoutType:     workoutType,
		SessionsPerWeek: sessionsPerWeek,
		HoursPerSession: hoursPerSession,
	}
	planID, err := s.planRepo.CreatePlan(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlanAlreadyExists
		}
		return nil, err
	}
	plan.ID = planID

	if err := s.generator.Generate(ctx, userID, user.Goal, sessionsPerWeek); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetPlan assembles the plan view: plan parameters plus every weekday's
// prescription with catalog exercises resolved.
func (s *planService) GetPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error) {
	plan, err := s.planRepo.GetPlanByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	days, err := s.planRepo.GetDaysByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// One catalog read resolves every exercise reference in the schedule.
	catalog, err := s.exerciseRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Exercise, len(catalog))
	for _, exercise := range catalog {
		byID[exercise.ID] = exercise
	}

	schedule := make(map[string]ScheduleDay, len(days))
	for _, day := range days {
		entries := make([]DayExerciseDetail, 0, len(day.Exercises))
		for _, entry := range day.Exercises {
			detail := DayExerciseDetail{WorkoutDayExercise: entry}
			if exercise, ok := byID[entry.ExerciseID]; ok {
				detail.Exercise = &exercise
			}
			entries = append(entries, detail)
		}
		schedule[day.DayOfWeek] = ScheduleDay{
			ID:        day.ID,
			DayOfWeek: day.DayOfWeek,
			Exercises: entries,
		}
	}

	return &PlanView{PlanDetails: *plan, WeeklySchedule: schedule}, nil
}

// AddExercise appends a prescription entry to a day.
func (s *planService) AddExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID, sets int, reps string) (*domain.WorkoutDayExercise, error) {
	if sets < 1 || reps == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	entry := domain.WorkoutDayExercise{ExerciseID: exerciseID, Sets: sets, Reps: reps}
	entryID, err := s.planRepo.AddDayExercise(ctx, dayID, entry)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	entry.ID = entryID
	return &entry, nil
}

// UpdateDayExercise changes the sets/reps scheme on one entry.
func (s *planService) UpdateDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID, sets int, reps string) error {
	if sets < 1 || reps == "" {
		return ErrValidationFailed
	}
	err := s.planRepo.UpdateDayExercise(ctx, dayExerciseID, sets, reps)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDayExerciseNotFound
	}
	return err
}

// SwapExercise points an existing prescription entry at a different catalog
// exercise. Logs recorded against the old exercise are left in place; they
// simply stop matching any slot.
func (s *planService) SwapExercise(ctx context.Context, dayExerciseID, newExerciseID primitive.ObjectID) error {
	if _, err := s.exerciseRepo.GetByID(ctx, newExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	err := s.planRepo.SwapExercise(ctx, dayExerciseID, newExerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDayExerciseNotFound
	}
	return err
}

// RemoveExercise deletes one prescription entry.
func (s *planService) RemoveExercise(ctx context.Context, dayExerciseID primitive.ObjectID) error {
	err := s.planRepo.DeleteDayExercise(ctx, dayExerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDayExerciseNotFound
	}
	return err
}

// SwapDayTemplate replaces a day's whole prescription with a template's
// exercises, sets and reps taken from the user's goal scheme.
func (s *planService) SwapDayTemplate(ctx context.Context, dayID, templateID, userID primitive.ObjectID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	sets, reps := SetRepScheme(user.Goal)
	entries := make([]domain.WorkoutDayExercise, 0, len(template.ExerciseIDs))
	for _, exerciseID := range template.ExerciseIDs {
		entries = append(entries, domain.WorkoutDayExercise{
			ExerciseID: exerciseID,
			Sets:       sets,
			Reps:       reps,
		})
	}

	err = s.planRepo.ReplaceDayExercises(ctx, dayID, entries)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDayNotFound
	}
	return err
}
