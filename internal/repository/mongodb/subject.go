package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uniprep/database"
	"uniprep/internal/models"
)

type SubjectStore struct {
	collection *mongo.Collection
}

func NewSubjectStore(db *mongo.Database) *SubjectStore {
	return &SubjectStore{collection: database.OpenCollection(db, models.SubjectCollection)}
}

func (s *SubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	return findAll[models.Subject](ctx, s.collection, bson.M{}, byCode())
}

func (s *SubjectStore) ListBySemester(ctx context.Context, semester primitive.ObjectID) ([]models.Subject, error) {
	return findAll[models.Subject](ctx, s.collection, bson.M{"semester": semester}, byCode())
}

func (s *SubjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	return findOne[models.Subject](ctx, s.collection, bson.M{"_id": id})
}

func (s *SubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID.IsZero() {
		subject.ID = primitive.NewObjectID()
	}
	return insertUnique(ctx, s.collection, bson.M{"code": subject.Code}, subject)
}

func byCode() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
}
