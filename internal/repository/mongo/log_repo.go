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

const logCollectionName = "session_logs"

// mongoLogRepository implements repository.LogRepository
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new SessionLog repository backed by MongoDB.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Create inserts a performed-set record. The unique compound index on
// (userId, exerciseId, date, setNumber) makes a rapid double-toggle on the
// same slot fail with ErrDuplicate instead of silently inserting twice.
func (r *mongoLogRepository) Create(ctx context.Context, log *domain.SessionLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user ID and exercise ID are required")
	}
	if log.SetNumber < 1 {
		return primitive.NilObjectID, errors.New("set number must be at least 1")
	}

	log.ID = primitive.NewObjectID()
	log.Date = domain.LogDay(log.Date)
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
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

// ListByUserAndDate retrieves all sets logged by a user on a calendar day.
// No logs is the common case and yields an empty slice, not an error.
func (r *mongoLogRepository) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.SessionLog, error) {
	filter := bson.M{
		"userId": userID,
		"date":   domain.LogDay(date),
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.SessionLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Delete removes a log entry, ensuring it belongs to the given user. The
// combined filter means a user can never delete another user's log.
func (r *mongoLogRepository) Delete(ctx context.Context, logID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":    logID,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureLogIndexes creates necessary indexes for the session_logs collection.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// At most one log per (user, exercise, date, set-number).
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "exerciseId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "setNumber", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
