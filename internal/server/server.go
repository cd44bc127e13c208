// Package server wires the handlers, middleware and storage into an
// http.Server.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/taskkeeper/internal/server/config"
	"github.com/iudanet/taskkeeper/internal/server/handlers"
	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/server/middleware"
	"github.com/iudanet/taskkeeper/internal/server/storage/sqlite"
)

// New builds the fully wired HTTP server from the config and an opened
// storage. The caller owns the storage lifecycle.
func New(cfg *config.Config, logger *slog.Logger, store *sqlite.Storage, version string) *http.Server {
	tokens := jwt.NewService(jwt.Config{
		Secret:   []byte(cfg.SecretKey),
		TokenTTL: cfg.TokenTTL,
	})

	userHandler := handlers.NewUserHandler(logger, store, store, tokens, cfg.BcryptCost)
	taskHandler := handlers.NewTaskHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, version)

	authGate := middleware.Auth(logger, tokens, store, store)

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /users", userHandler.Register)
	mux.HandleFunc("POST /users/login", userHandler.Login)
	mux.HandleFunc("GET /users/{id}", userHandler.GetUser)

	// Everything below requires a valid session
	protected := func(h http.HandlerFunc) http.Handler {
		return authGate(h)
	}

	mux.Handle("POST /users/logout", protected(userHandler.Logout))
	mux.Handle("POST /users/logoutAll", protected(userHandler.LogoutAll))
	mux.Handle("GET /users/me", protected(userHandler.GetMe))
	mux.Handle("PATCH /users/me", protected(userHandler.UpdateMe))
	mux.Handle("DELETE /users/me", protected(userHandler.DeleteMe))

	mux.Handle("POST /users/me/avatar", protected(userHandler.UploadAvatar))
	mux.Handle("DELETE /users/me/avatar", protected(userHandler.DeleteAvatar))
	mux.Handle("GET /users/{id}/avatar", protected(userHandler.GetAvatar))

	mux.Handle("POST /tasks", protected(taskHandler.Create))
	mux.Handle("GET /tasks", protected(taskHandler.List))
	mux.Handle("GET /tasks/{id}", protected(taskHandler.Get))
	mux.Handle("PATCH /tasks/{id}", protected(taskHandler.Update))
	mux.Handle("DELETE /tasks/{id}", protected(taskHandler.Delete))

	handler := middleware.Recovery(logger)(middleware.Logging(logger)(mux))

	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
