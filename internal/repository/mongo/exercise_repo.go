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
	exerciseCollectionName    = "exercises"
	muscleGroupCollectionName = "muscle_groups"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	exercises    *mongo.Collection
	muscleGroups *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise catalog repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		exercises:    db.Collection(exerciseCollectionName),
		muscleGroups: db.Collection(muscleGroupCollectionName),
	}
}

// Create inserts a new exercise into the catalog. Used by seeding only.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}

	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	result, err := r.exercises.InsertOne(ctx, exercise)
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

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.exercises.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List retrieves catalog exercises, optionally filtered by muscle group
// membership. An empty filter returns the whole catalog.
func (r *mongoExerciseRepository) List(ctx context.Context, muscleGroupIDs []primitive.ObjectID) ([]domain.Exercise, error) {
	filter := bson.M{}
	if len(muscleGroupIDs) > 0 {
		filter["muscleGroupId"] = bson.M{"$in": muscleGroupIDs}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.exercises.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// CreateMuscleGroup inserts a new muscle group. Used by seeding only.
func (r *mongoExerciseRepository) CreateMuscleGroup(ctx context.Context, group *domain.MuscleGroup) (primitive.ObjectID, error) {
	if group.Name == "" {
		return primitive.NilObjectID, errors.New("muscle group name is required")
	}

	group.ID = primitive.NewObjectID()

	result, err := r.muscleGroups.InsertOne(ctx, group)
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

// ListMuscleGroups retrieves all muscle groups.
func (r *mongoExerciseRepository) ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	cursor, err := r.muscleGroups.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []domain.MuscleGroup
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// CountMuscleGroups reports how many muscle groups exist. The seeder uses
// this to decide whether the catalog has already been populated.
func (r *mongoExerciseRepository) CountMuscleGroups(ctx context.Context) (int64, error) {
	return r.muscleGroups.CountDocuments(ctx, bson.M{})
}

// EnsureExerciseIndexes creates necessary indexes for the catalog collections.
func EnsureExerciseIndexes(ctx context.Context, exercises, muscleGroups *mongo.Collection) {
	exerciseIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "muscleGroupId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := exercises.Indexes().CreateMany(ctx, exerciseIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", exercises.Name(), err)
	}

	groupIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := muscleGroups.Indexes().CreateMany(ctx, groupIndexes); err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", muscleGroups.Name(), err)
	}
}
