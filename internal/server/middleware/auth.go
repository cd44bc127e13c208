// Package middleware contains the HTTP middleware chain: the authentication
// gate, request logging and panic recovery.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/taskkeeper/internal/server/handlers"
	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// Auth builds the authentication gate protecting every private endpoint.
// A request passes the gate only when all four checks succeed, in order:
//
//  1. a Bearer token is present in the Authorization header
//  2. the token signature and expiry verify
//  3. the user named by the token still exists
//  4. the exact token string is registered in the user's session set
//
// Signature verification is cheap and runs before any storage lookup, so a
// flood of garbage tokens never reaches the database. Steps 3 and 4 report
// the same generic rejection: callers cannot tell an orphaned token from a
// revoked one.
func Auth(
	logger *slog.Logger,
	tokens *jwt.Service,
	users storage.UserStorage,
	sessions storage.SessionStorage,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				writeUnauthorized(logger, w, "missing credentials")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("malformed Authorization header")
				writeUnauthorized(logger, w, "missing credentials")
				return
			}
			tokenString := parts[1]

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("token verification failed", "error", err)
				writeUnauthorized(logger, w, "invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				// A deleted account orphans its tokens; reject without
				// revealing whether the token ever resolved
				logger.Warn("token user lookup failed", "error", err)
				writeUnauthorized(logger, w, "invalid token")
				return
			}

			ok, err := sessions.HasSession(r.Context(), user.ID, tokenString)
			if err != nil {
				logger.Error("session lookup failed", "error", err)
				writeUnauthorized(logger, w, "invalid token")
				return
			}
			if !ok {
				// Correctly signed but logged out
				logger.Warn("token not in session set", "user_id", user.ID)
				writeUnauthorized(logger, w, "invalid token")
				return
			}

			ctx := handlers.ContextWithSession(r.Context(), user, tokenString)

			logger.Debug("request authenticated", "user_id", user.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized writes a 401 with the standard error envelope
func writeUnauthorized(logger *slog.Logger, w http.ResponseWriter, message string) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
