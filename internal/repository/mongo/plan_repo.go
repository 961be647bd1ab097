package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	planCollectionName = "workout_plans"
	dayCollectionName  = "workout_days"
)

// mongoPlanRepository implements repository.PlanRepository. Day exercises are
// embedded in the workout_days documents; per-entry mutations use positional
// updates keyed on "exercises._id".
type mongoPlanRepository struct {
	plans *mongo.Collection
	days  *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		plans: db.Collection(planCollectionName),
		days:  db.Collection(dayCollectionName),
	}
}

// CreatePlan inserts the user's plan document.
func (r *mongoPlanRepository) CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID is required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.plans.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetPlanByUser retrieves the user's plan document.
func (r *mongoPlanRepository) GetPlanByUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"userId": userID}

	err := r.plans.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// CreateDay inserts one weekday's prescription document.
func (r *mongoPlanRepository) CreateDay(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if day.UserID == primitive.NilObjectID || day.DayOfWeek == "" {
		return primitive.NilObjectID, errors.New("user ID and day of week are required")
	}

	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now
	if day.Exercises == nil {
		day.Exercises = []domain.WorkoutDayExercise{}
	}
	for i := range day.Exercises {
		if day.Exercises[i].ID == primitive.NilObjectID {
			day.Exercises[i].ID = primitive.NewObjectID()
		}
	}

	result, err := r.days.InsertOne(ctx, day)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetDaysByUser retrieves all weekday prescriptions for a user.
func (r *mongoPlanRepository) GetDaysByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.days.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.WorkoutDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// GetDayByID retrieves one weekday prescription.
func (r *mongoPlanRepository) GetDayByID(ctx context.Context, dayID primitive.ObjectID) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	filter := bson.M{"_id": dayID}

	err := r.days.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// DeleteDaysForUser removes all weekday prescriptions for a user. Called
// before regeneration so a new plan never duplicates days.
func (r *mongoPlanRepository) DeleteDaysForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.days.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// AddDayExercise appends one prescription entry to a day.
func (r *mongoPlanRepository) AddDayExercise(ctx context.Context, dayID primitive.ObjectID, entry domain.WorkoutDayExercise) (primitive.ObjectID, error) {
	if entry.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise ID is required")
	}
	if entry.Sets < 1 {
		return primitive.NilObjectID, errors.New("sets must be at least 1")
	}

	entry.ID = primitive.NewObjectID()

	filter := bson.M{"_id": dayID}
	update := bson.M{
		"$push": bson.M{"exercises": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if result.MatchedCount == 0 {
		return primitive.NilObjectID, repository.ErrNotFound
	}

	return entry.ID, nil
}

// UpdateDayExercise changes the sets/reps scheme on one prescription entry.
func (r *mongoPlanRepository) UpdateDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID, sets int, reps string) error {
	if sets < 1 {
		return errors.New("sets must be at least 1")
	}

	filter := bson.M{"exercises._id": dayExerciseID}
	update := bson.M{
		"$set": bson.M{
			"exercises.$.sets": sets,
			"exercises.$.reps": reps,
			"updatedAt":        time.Now().UTC(),
		},
	}

	result, err := r.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SwapExercise changes which catalog exercise a prescription entry targets.
// The entry keeps its ID, sets and reps; only the exercise identity changes.
func (r *mongoPlanRepository) SwapExercise(ctx context.Context, dayExerciseID, newExerciseID primitive.ObjectID) error {
	if newExerciseID == primitive.NilObjectID {
		return errors.New("new exercise ID is required")
	}

	filter := bson.M{"exercises._id": dayExerciseID}
	update := bson.M{
		"$set": bson.M{
			"exercises.$.exerciseId": newExerciseID,
			"updatedAt":              time.Now().UTC(),
		},
	}

	result, err := r.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteDayExercise removes one prescription entry from its day.
func (r *mongoPlanRepository) DeleteDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID) error {
	filter := bson.M{"exercises._id": dayExerciseID}
	update := bson.M{
		"$pull": bson.M{"exercises": bson.M{"_id": dayExerciseID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceDayExercises swaps out a day's whole prescription in one write.
func (r *mongoPlanRepository) ReplaceDayExercises(ctx context.Context, dayID primitive.ObjectID, entries []domain.WorkoutDayExercise) error {
	if entries == nil {
		entries = []domain.WorkoutDayExercise{}
	}
	for i := range entries {
		if entries[i].ID == primitive.NilObjectID {
			entries[i].ID = primitive.NewObjectID()
		}
	}

	filter := bson.M{"_id": dayID}
	update := bson.M{
		"$set": bson.M{
			"exercises": entries,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes for the plan collections.
func EnsurePlanIndexes(ctx context.Context, plans, days *mongo.Collection) {
	planIndexes := []mongo.IndexModel{
		{
			// One active plan per user.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := plans.Indexes().CreateMany(ctx, planIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", plans.Name(), err)
	}

	dayIndexes := []mongo.IndexModel{
		{
			// A weekday appears once per user's schedule.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "exercises._id", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := days.Indexes().CreateMany(ctx, dayIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", days.Name(), err)
	}
}
