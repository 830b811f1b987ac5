package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/api/middleware"
	"github.com/widescope/api/internal/api/types"
	"github.com/widescope/api/internal/api/validators"
	"github.com/widescope/api/internal/services"
	appErr "github.com/widescope/api/pkg/errors"
)

type UsersHandler struct {
	auth  services.AuthService
	users services.UserService
}

func NewUsersHandler(auth services.AuthService, users services.UserService) *UsersHandler {
	return &UsersHandler{auth: auth, users: users}
}

func (h *UsersHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req types.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "user did not provide email, name or password"))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: map[string]any{"user": user}})
}

func (h *UsersHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req types.LogInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid username or password"))
		return
	}

	token, _, err := h.auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]any{"user": map[string]string{"token": token}},
	})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "requested user does not exist"))
		return
	}

	if r.URL.Query().Get("friends") == "all" {
		friends, err := h.users.Friends(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"userFriends": friends}})
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"user": user}})
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"users": users}})
}

func (h *UsersHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	requesterID, err := primitive.ObjectIDFromHex(middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeUnauthorized, "authentication error"))
		return
	}
	friendID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "friendId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "bad request"))
		return
	}

	friend, err := h.users.AddFriend(r.Context(), requesterID, friendID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"friendAdded": friend.Name}})
}
