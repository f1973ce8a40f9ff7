package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-auth-api/internal/model"
	"go-auth-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.MessageResponse{Message: message})
}

// writeError is the single place where service errors become HTTP responses.
// Unclassified errors fall through to the 500 body carrying the raw detail,
// mirroring the development-mode behavior this service inherits; production
// deployments should scrub the detail field.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := model.ErrorResponse{Message: "An unexpected error occurred"}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Message = apiErr.Message
	case errors.Is(err, model.ErrDuplicateEmail):
		status = http.StatusBadRequest
		body.Message = "User already exists"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Message = "User not found"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenMalformed):
		status = http.StatusForbidden
		body.Message = "Forbidden"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		body.Detail = err.Error()
	}

	writeJSON(w, status, body)
}
