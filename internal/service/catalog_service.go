package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// CatalogService is the read-only accessor over the exercise library and the
// whole-day templates. Nothing in the tracking flow writes through it.
type CatalogService interface {
	ListExercises(ctx context.Context, muscleGroupIDs []primitive.ObjectID) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
	ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
}

// --- Service Implementation ---

type catalogService struct {
	exerciseRepo repository.ExerciseRepository
	templateRepo repository.TemplateRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(exerciseRepo repository.ExerciseRepository, templateRepo repository.TemplateRepository) CatalogService {
	return &catalogService{
		exerciseRepo: exerciseRepo,
		templateRepo: templateRepo,
	}
}

// ListExercises returns catalog exercises, optionally narrowed to the given
// muscle groups. An empty filter returns everything.
func (s *catalogService) ListExercises(ctx context.Context, muscleGroupIDs []primitive.ObjectID) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, muscleGroupIDs)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, nil
}

// GetExercise retrieves a single catalog exercise.
func (s *catalogService) GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListMuscleGroups returns all muscle groups.
func (s *catalogService) ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	return s.exerciseRepo.ListMuscleGroups(ctx)
}

// ListTemplates returns all whole-day workout templates.
func (s *catalogService) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	return templates, nil
}

// GetTemplate retrieves a single template.
func (s *catalogService) GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}
