package repository

import (
	"context"

	"quiz-platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuizRepository struct {
	Col     *mongo.Collection
	LinkCol *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{
		Col:     db.Collection("quizzes"),
		LinkCol: db.Collection("quiz_questions"),
	}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid.Hex()
	}
	return nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var quiz models.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// InsertLinks persists the quiz-question ordering, 1-based in selection order.
func (r *QuizRepository) InsertLinks(ctx context.Context, quizID string, questionIDs []string) error {
	links := make([]interface{}, len(questionIDs))
	for i, qid := range questionIDs {
		links[i] = models.QuizQuestion{
			QuizID:     quizID,
			QuestionID: qid,
			Order:      i + 1,
		}
	}
	_, err := r.LinkCol.InsertMany(ctx, links)
	return err
}

// FindLinkedQuestionIDs returns the quiz's question ids in play order.
func (r *QuizRepository) FindLinkedQuestionIDs(ctx context.Context, quizID string) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.LinkCol.Find(ctx, bson.M{"quiz_id": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ids []string
	for cur.Next(ctx) {
		var link models.QuizQuestion
		if err := cur.Decode(&link); err != nil {
			return nil, err
		}
		ids = append(ids, link.QuestionID)
	}
	return ids, cur.Err()
}
