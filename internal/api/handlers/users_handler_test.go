package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
)

func userRouter(h *UsersHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/users/sign-up", h.SignUp)
	r.Post("/users/log-in", h.LogIn)
	r.Get("/users", h.List)
	r.Get("/users/{userId}", h.Get)
	return r
}

func TestUsersHandler_SignUp(t *testing.T) {
	auth := &stubAuthService{registerUser: &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "gercho",
		Email:    "gercho@mail.com",
		Password: "$2a$10$hash",
	}}
	h := NewUsersHandler(auth, &stubUserService{})

	body := `{"name":"gercho","email":"gercho@mail.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/sign-up", strings.NewReader(body))
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	// The hashed password never appears in the response.
	require.NotContains(t, rr.Body.String(), "password")
	require.NotContains(t, rr.Body.String(), "$2a$10$hash")
	require.Contains(t, rr.Body.String(), `"gercho"`)
}

func TestUsersHandler_SignUpValidation(t *testing.T) {
	h := NewUsersHandler(&stubAuthService{}, &stubUserService{})

	// Name below the minimum length.
	body := `{"name":"ab","email":"gercho@mail.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/sign-up", strings.NewReader(body))
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUsersHandler_SignUpDuplicate(t *testing.T) {
	auth := &stubAuthService{registerErr: appErr.New(appErr.CodeConflict, "user already exists")}
	h := NewUsersHandler(auth, &stubUserService{})

	body := `{"name":"gercho","email":"gercho@mail.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/sign-up", strings.NewReader(body))
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "user already exists")
}

func TestUsersHandler_LogIn(t *testing.T) {
	auth := &stubAuthService{loginToken: "signed.jwt.token"}
	h := NewUsersHandler(auth, &stubUserService{})

	body := `{"name":"gercho","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/log-in", strings.NewReader(body))
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				Token string `json:"token"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "signed.jwt.token", resp.Data.User.Token)
}

func TestUsersHandler_LogInBadCredentials(t *testing.T) {
	auth := &stubAuthService{loginErr: appErr.New(appErr.CodeUnauthorized, "invalid username or password")}
	h := NewUsersHandler(auth, &stubUserService{})

	body := `{"name":"gercho","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/users/log-in", strings.NewReader(body))
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), `"success":false`)
}

func TestUsersHandler_Get(t *testing.T) {
	id := primitive.NewObjectID()
	users := &stubUserService{user: &models.User{ID: id, Name: "gercho"}}
	h := NewUsersHandler(&stubAuthService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/users/"+id.Hex(), nil)
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), id.Hex())
}

func TestUsersHandler_GetInvalidID(t *testing.T) {
	h := NewUsersHandler(&stubAuthService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-hex-id", nil)
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUsersHandler_GetFriends(t *testing.T) {
	id := primitive.NewObjectID()
	users := &stubUserService{friends: []models.User{{ID: primitive.NewObjectID(), Name: "ivan"}}}
	h := NewUsersHandler(&stubAuthService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/users/"+id.Hex()+"?friends=all", nil)
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "userFriends")
	require.Contains(t, rr.Body.String(), "ivan")
}

func TestUsersHandler_List(t *testing.T) {
	users := &stubUserService{users: []models.User{{Name: "gercho"}, {Name: "ivan"}}}
	h := NewUsersHandler(&stubAuthService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()
	userRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "gercho")
	require.Contains(t, rr.Body.String(), "ivan")
}

func TestUsersHandler_AddFriendRequiresIdentity(t *testing.T) {
	h := NewUsersHandler(&stubAuthService{}, &stubUserService{user: &models.User{Name: "ivan"}})

	r := chi.NewRouter()
	r.Patch("/users/friends/{friendId}", h.AddFriend)

	// No authenticated identity in context.
	req := httptest.NewRequest(http.MethodPatch, "/users/friends/"+primitive.NewObjectID().Hex(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
