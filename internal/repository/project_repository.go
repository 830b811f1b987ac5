package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	List(ctx context.Context, limit, offset int64) ([]models.Project, error)
	Count(ctx context.Context) (int64, error)
	ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) ProjectRepository {
	col := db.Collection("projects")
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](col), col: col}
}

// EnsureProjectIndexes creates the author index backing the by-author query.
func EnsureProjectIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("projects").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}},
	})
	return err
}

func (r *projectRepository) List(ctx context.Context, limit, offset int64) ([]models.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "creation_date", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	return out, nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count projects failed")
	}
	return n, nil
}

func (r *projectRepository) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creation_date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by author failed")
	}
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects by author failed")
	}
	return out, nil
}
