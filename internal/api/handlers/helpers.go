package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/widescope/api/internal/api/middleware"
	"github.com/widescope/api/internal/api/types"
	appErr "github.com/widescope/api/pkg/errors"
	"github.com/widescope/api/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs the private diagnostic server-side and responds once with
// the public message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := types.FromAppError(err)
	logger.L().Error("request failed",
		zap.String("id", middleware.GetRequestID(r.Context())),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, types.APIResponse{Success: false, Error: apiErr})
}

func writeInvalid(w http.ResponseWriter, r *http.Request, msg string) {
	writeError(w, r, appErr.New(appErr.CodeInvalid, msg))
}
