package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uniprep/internal/config"
	"uniprep/internal/models"
)

// Connect opens a client against cfg.URI and pings the primary.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Printf("MongoDB connected: %s", cfg.Database)
	return client, nil
}

func OpenCollection(db *mongo.Database, collectionName string) *mongo.Collection {
	return db.Collection(collectionName)
}

// EnsureIndexes creates the unique keys the handlers rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string]mongo.IndexModel{
		models.SemesterCollection: {Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
		models.SubjectCollection:  {Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		models.UserCollection:     {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		models.QuestionCollection: {Keys: bson.D{{Key: "subject", Value: 1}}},
	}

	for collection, model := range indexes {
		if _, err := OpenCollection(db, collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", collection, err)
		}
	}
	return nil
}
