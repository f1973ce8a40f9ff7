package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-api/internal/config"
	"go-auth-api/internal/handler"
	"go-auth-api/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Private *handler.PrivateHandler
	Docs    *handler.DocsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", h.Auth.Signup)
			auth.Post("/signin", h.Auth.Signin)
		})

		api.Route("/user", func(user chi.Router) {
			user.Use(authMiddleware.RequireAuth)
			user.Get("/findAll", h.User.FindAll)
			user.Delete("/delete/{id}", h.User.Delete)
		})

		api.With(authMiddleware.RequireAuth).Get("/private/dashboard", h.Private.Dashboard)
	})

	return r
}
