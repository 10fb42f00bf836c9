package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"uniprep/database"
	"uniprep/internal/models"
	"uniprep/internal/repository"
)

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: database.OpenCollection(db, models.UserCollection)}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.collection, bson.M{"email": email})
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Created_at = now
	user.Updated_at = now
	return insertOne(ctx, s.collection, user)
}

func (s *UserStore) UpdatePending(ctx context.Context, user *models.User) error {
	user.Updated_at = time.Now().UTC()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"password":   user.Password,
		"otp":        user.OTP,
		"otpExpires": user.OTPExpires,
		"updated_at": user.Updated_at,
	}}
	return s.updateOne(ctx, filter, update)
}

func (s *UserStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set":   bson.M{"isVerified": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"otp": "", "otpExpires": ""},
	}
	return s.updateOne(ctx, filter, update)
}

func (s *UserStore) updateOne(ctx context.Context, filter, update interface{}) error {
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
