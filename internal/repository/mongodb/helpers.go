package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uniprep/internal/repository"
)

// findAll decodes every document matching filter. The result is never nil.
func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection.Name(), err)
	}
	defer cur.Close(ctx)

	items := []T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection.Name(), err)
		}
		items = append(items, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection.Name(), err)
	}
	return items, nil
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, filter interface{}) (*T, error) {
	var item T
	err := collection.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", collection.Name(), err)
	}
	return &item, nil
}

// insertUnique counts documents matching filter before inserting so the
// common case answers without relying on the unique index error.
func insertUnique(ctx context.Context, collection *mongo.Collection, filter interface{}, doc interface{}) error {
	alreadyExists, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("count %s: %w", collection.Name(), err)
	}
	if alreadyExists > 0 {
		return repository.ErrDuplicate
	}
	return insertOne(ctx, collection, doc)
}

func insertOne(ctx context.Context, collection *mongo.Collection, doc interface{}) error {
	_, err := collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", collection.Name(), err)
	}
	return nil
}
