package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uniprep/database"
	"uniprep/internal/models"
)

type QuestionStore struct {
	collection *mongo.Collection
}

func NewQuestionStore(db *mongo.Database) *QuestionStore {
	return &QuestionStore{collection: database.OpenCollection(db, models.QuestionCollection)}
}

func (s *QuestionStore) ListBySubject(ctx context.Context, subject primitive.ObjectID) ([]models.Question, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "unitNo", Value: 1}, {Key: "createdAt", Value: 1}})
	return findAll[models.Question](ctx, s.collection, bson.M{"subject": subject}, findOptions)
}

func (s *QuestionStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	return findAll[models.Question](ctx, s.collection, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *QuestionStore) InsertMany(ctx context.Context, questions []models.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(questions))
	for i := range questions {
		if questions[i].ID.IsZero() {
			questions[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, questions[i])
	}

	insertResult, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert questions: %w", err)
	}
	return len(insertResult.InsertedIDs), nil
}
