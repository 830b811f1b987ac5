package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/widescope/api/internal/models"
	"github.com/widescope/api/internal/repository"
	appErr "github.com/widescope/api/pkg/errors"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, name, password string) (string, *models.User, error)
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte) AuthService {
	return &authService{users: users, hmacSecret: secret, tokenTTL: 24 * time.Hour}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var existing models.User
	if err := s.users.GetByName(ctx, name, &existing); err == nil {
		return nil, appErr.New(appErr.CodeConflict, "user already exists")
	} else if !appErr.IsCode(err, appErr.CodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "unable to create the user")
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Contacts: []string{},
		Projects: []primitive.ObjectID{},
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *authService) Login(ctx context.Context, name, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByName(ctx, name, &user); err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid username or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"name": user.Name,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "unable to sign the token")
	}

	return signed, &user, nil
}
