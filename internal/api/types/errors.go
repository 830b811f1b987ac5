package types

import (
	"errors"
	"net/http"

	appErr "github.com/widescope/api/pkg/errors"
)

var statusByCode = map[appErr.Code]int{
	appErr.CodeInvalid:      http.StatusBadRequest,
	appErr.CodeUnauthorized: http.StatusUnauthorized,
	appErr.CodeForbidden:    http.StatusForbidden,
	appErr.CodeNotFound:     http.StatusNotFound,
	appErr.CodeConflict:     http.StatusConflict,
	appErr.CodeInternal:     http.StatusInternalServerError,
}

// FromAppError maps an error to its HTTP status and public representation.
// Unrecognized errors become a generic internal-error response rather than
// leaking detail.
func FromAppError(err error) (int, *APIError) {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		status, ok := statusByCode[ae.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return status, &APIError{Code: string(ae.Code), Message: ae.Message}
	}
	return http.StatusInternalServerError, &APIError{
		Code:    string(appErr.CodeUnknown),
		Message: "something went wrong",
	}
}
