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

type SemesterStore struct {
	collection *mongo.Collection
}

func NewSemesterStore(db *mongo.Database) *SemesterStore {
	return &SemesterStore{collection: database.OpenCollection(db, models.SemesterCollection)}
}

func (s *SemesterStore) List(ctx context.Context) ([]models.Semester, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	return findAll[models.Semester](ctx, s.collection, bson.M{}, findOptions)
}

func (s *SemesterStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Semester, error) {
	return findOne[models.Semester](ctx, s.collection, bson.M{"_id": id})
}

func (s *SemesterStore) Create(ctx context.Context, semester *models.Semester) error {
	if semester.ID.IsZero() {
		semester.ID = primitive.NewObjectID()
	}
	return insertUnique(ctx, s.collection, bson.M{"number": semester.Number}, semester)
}
