package handler

import (
	"fmt"
	"net/http"

	"go-auth-api/internal/middleware"
	"go-auth-api/pkg/apierror"
)

type PrivateHandler struct{}

func NewPrivateHandler() *PrivateHandler {
	return &PrivateHandler{}
}

func (h *PrivateHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized))
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Welcome to the dashboard, %s", claims.Email))
}
