package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	appErr "github.com/widescope/api/pkg/errors"
)

// BaseRepository defines common CRUD operations over a mongo collection.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID, dest *T) error
	Replace(ctx context.Context, id primitive.ObjectID, obj *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type baseRepository[T any] struct {
	col *mongo.Collection
}

func NewBaseRepository[T any](col *mongo.Collection) BaseRepository[T] {
	return &baseRepository[T]{col: col}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, obj)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, appErr.Wrap(err, appErr.CodeConflict, "entity already exists")
		}
		return primitive.NilObjectID, appErr.Wrap(err, appErr.CodeInternal, "create entity failed")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, appErr.New(appErr.CodeInternal, "create entity failed")
	}
	return id, nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id primitive.ObjectID, dest *T) error {
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(dest); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErr.New(appErr.CodeNotFound, "entity not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get entity failed")
	}
	return nil
}

func (r *baseRepository[T]) Replace(ctx context.Context, id primitive.ObjectID, obj *T) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, obj)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update entity failed")
	}
	if res.MatchedCount == 0 {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	return nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "delete entity failed")
	}
	if res.DeletedCount == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %s not found", id.Hex()))
	}
	return nil
}
