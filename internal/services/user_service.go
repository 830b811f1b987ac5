package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/models"
	"github.com/widescope/api/internal/repository"
	appErr "github.com/widescope/api/pkg/errors"
)

type UserService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Friends(ctx context.Context, id primitive.ObjectID) ([]models.User, error)
	List(ctx context.Context, name string) ([]models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.GetByID(ctx, id, &user); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "requested user does not exist")
	}
	return &user, nil
}

// Friends resolves the user's contact list to full user documents. Contacts
// holding ids that no longer resolve are skipped.
func (s *userService) Friends(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(user.Contacts))
	for _, contact := range user.Contacts {
		friendID, err := primitive.ObjectIDFromHex(contact)
		if err != nil {
			continue
		}
		var friend models.User
		if err := s.users.GetByID(ctx, friendID, &friend); err != nil {
			continue
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

func (s *userService) List(ctx context.Context, name string) ([]models.User, error) {
	users, err := s.users.List(ctx, name)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "no users found")
	}
	if len(users) == 0 {
		return nil, appErr.New(appErr.CodeNotFound, "no users found")
	}
	return users, nil
}

// AddFriend records friendID in the requester's contact list and returns
// the friend. Adding an existing contact is an error, matching the exposed
// endpoint's behavior.
func (s *userService) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	var friend models.User
	if err := s.users.GetByID(ctx, friendID, &friend); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "bad request")
	}

	if err := s.users.AddContact(ctx, userID, friendID.Hex()); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "bad request")
	}
	return &friend, nil
}
