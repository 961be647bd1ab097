package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound  = errors.New("log entry not found or user mismatch")
	ErrDuplicateLog = errors.New("a log already exists for this set")
)

// LogService is the log store accessor: create, list-by-date and delete
// performed-set records. Logs are never updated in place.
type LogService interface {
	Create(ctx context.Context, log *domain.SessionLog) (*domain.SessionLog, error)
	ListForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.SessionLog, error)
	Delete(ctx context.Context, logID, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type logService struct {
	logRepo repository.LogRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// Create records one performed set.
func (s *logService) Create(ctx context.Context, log *domain.SessionLog) (*domain.SessionLog, error) {
	if log.SetNumber < 1 {
		return nil, errors.New("set number must be at least 1")
	}
	if log.Reps < 0 || log.WeightKg < 0 {
		return nil, errors.New("reps and weight cannot be negative")
	}

	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateLog
		}
		return nil, err
	}
	log.ID = logID
	return log, nil
}

// ListForDate returns the sets logged on a calendar day; an empty day yields
// an empty slice, never an error.
func (s *logService) ListForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.SessionLog, error) {
	logs, err := s.logRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.SessionLog{}
	}
	return logs, nil
}

// Delete removes a log entry owned by the user.
func (s *logService) Delete(ctx context.Context, logID, userID primitive.ObjectID) error {
	err := s.logRepo.Delete(ctx, logID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}
