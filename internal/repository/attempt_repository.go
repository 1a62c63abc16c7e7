package repository

import (
	"context"

	"quiz-platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	res, err := r.Col.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attempt.ID = oid.Hex()
	}
	return nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.Attempt, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var attempt models.Attempt
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Complete applies update only while the attempt is still IN_PROGRESS.
// The status filter plus the modified-count check make the transition
// atomic: of two racing submissions exactly one sees modified == true.
func (r *AttemptRepository) Complete(ctx context.Context, id string, update bson.M) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, mongo.ErrNoDocuments
	}
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": objID, "status": models.AttemptInProgress},
		bson.M{"$set": update},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *AttemptRepository) FindCompletedPage(ctx context.Context, userID string, skip, limit int64) ([]models.Attempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.findCompleted(ctx, bson.M{"user_id": userID, "status": models.AttemptCompleted}, opts)
}

// FindCompletedByUser returns every completed attempt for the user.
// History statistics aggregate over the whole set, not just one page.
func (r *AttemptRepository) FindCompletedByUser(ctx context.Context, userID string) ([]models.Attempt, error) {
	return r.findCompleted(ctx, bson.M{"user_id": userID, "status": models.AttemptCompleted}, nil)
}

func (r *AttemptRepository) CountCompletedByUser(ctx context.Context, userID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"user_id": userID, "status": models.AttemptCompleted})
}

func (r *AttemptRepository) CountCompleted(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"status": models.AttemptCompleted})
}

// AverageCompletedScore returns the mean score across all completed
// attempts, 0 when there are none.
func (r *AttemptRepository) AverageCompletedScore(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.AttemptCompleted}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$score"}}},
		}}},
	}
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	var result struct {
		Avg float64 `bson:"avg"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, err
		}
	}
	return result.Avg, cur.Err()
}

func (r *AttemptRepository) FindRecentCompleted(ctx context.Context, limit int64) ([]models.Attempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(limit)
	return r.findCompleted(ctx, bson.M{"status": models.AttemptCompleted}, opts)
}

func (r *AttemptRepository) findCompleted(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Attempt, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.Col.Find(ctx, filter, opts)
	} else {
		cur, err = r.Col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.Attempt
	for cur.Next(ctx) {
		var a models.Attempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}
