package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go-auth-api/internal/model"
)

// Recovery converts panics into the generic 500 body. The raw detail in the
// response is acceptable for development only; production deployments should
// scrub it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Message: "An unexpected error occurred",
					Detail:  fmt.Sprintf("%v", recovered),
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
