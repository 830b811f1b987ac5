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

type UserRepository interface {
	BaseRepository[models.User]
	GetByName(ctx context.Context, name string, dest *models.User) error
	List(ctx context.Context, name string) ([]models.User, error)
	AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error
	RemoveProject(ctx context.Context, userID, projectID primitive.ObjectID) error
	AddContact(ctx context.Context, userID primitive.ObjectID, contact string) error
}

type userRepository struct {
	BaseRepository[models.User]
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	col := db.Collection("users")
	return &userRepository{BaseRepository: NewBaseRepository[models.User](col), col: col}
}

// EnsureUserIndexes creates the unique name index used for duplicate
// sign-up detection.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepository) GetByName(ctx context.Context, name string, dest *models.User) error {
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(dest); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by name failed")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, name string) ([]models.User, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = name
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}

func (r *userRepository) AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"projects": projectID}})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "add project to user failed")
	}
	if res.MatchedCount == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}

func (r *userRepository) RemoveProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"projects": projectID}})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "remove project from user failed")
	}
	if res.MatchedCount == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}

func (r *userRepository) AddContact(ctx context.Context, userID primitive.ObjectID, contact string) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"contacts": contact}})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "add contact failed")
	}
	if res.MatchedCount == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	if res.ModifiedCount == 0 {
		return appErr.New(appErr.CodeNotFound, "requested friend is already a contact")
	}
	return nil
}
