package handlers

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
	"github.com/widescope/api/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (required by handlers)
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// stub services

type stubAuthService struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubAuthService) Login(ctx context.Context, name, password string) (string, *models.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.registerUser, nil
}

type stubUserService struct {
	user    *models.User
	users   []models.User
	friends []models.User
	err     error
}

func (s *stubUserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) Friends(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.friends, nil
}

func (s *stubUserService) List(ctx context.Context, name string) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func (s *stubUserService) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubProjectService struct {
	project  *models.Project
	projects []models.Project
	total    int64
	err      error

	created         *models.Project
	updated         *models.Project
	deleted         []primitive.ObjectID
	deleteRequester primitive.ObjectID
}

func (s *stubProjectService) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.project, nil
}

func (s *stubProjectService) List(ctx context.Context, limit, offset int64) ([]models.Project, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.projects, s.total, nil
}

func (s *stubProjectService) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.projects, nil
}

func (s *stubProjectService) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = p
	p.ID = primitive.NewObjectID()
	return p, nil
}

func (s *stubProjectService) Update(ctx context.Context, id, requesterID primitive.ObjectID, p *models.Project) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = p
	p.ID = id
	return p, nil
}

func (s *stubProjectService) Delete(ctx context.Context, id, requesterID primitive.ObjectID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	s.deleteRequester = requesterID
	return nil
}

func notFound(msg string) error { return appErr.New(appErr.CodeNotFound, msg) }
