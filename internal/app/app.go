package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-auth-api/internal/config"
	"go-auth-api/internal/database"
	"go-auth-api/internal/handler"
	"go-auth-api/internal/middleware"
	"go-auth-api/internal/repository"
	"go-auth-api/internal/router"
	"go-auth-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cleanupFuncs []func()

	users, cleanup, err := newUserDirectory(cfg)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		cleanupFuncs = append(cleanupFuncs, cleanup)
	}

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		runCleanups(cleanupFuncs)
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(users, hasher, tokenService)

	if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
		if err := authService.Seed(context.Background(), cfg.SeedEmail, cfg.SeedPassword, cfg.SeedRole); err != nil {
			runCleanups(cleanupFuncs)
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(authService),
		Private: handler.NewPrivateHandler(),
		Docs:    handler.NewDocsHandler("./docs/openapi.yaml"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanupFuncs}, nil
}

func newUserDirectory(cfg *config.Config) (repository.UserDirectory, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		slog.Info("using postgres user directory")
		db, err := database.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		return repository.NewPostgresDirectory(db.Pool), db.Close, nil

	case cfg.SQLitePath != "":
		slog.Info("using sqlite user directory", "path", cfg.SQLitePath)
		dir, err := repository.NewSQLiteDirectory(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return dir, func() { _ = dir.Close() }, nil

	default:
		slog.Info("using in-memory user directory")
		return repository.NewMemoryDirectory(), nil, nil
	}
}

func runCleanups(cleanups []func()) {
	for _, cleanup := range cleanups {
		cleanup()
	}
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runCleanups(a.cleanupFuncs)

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
