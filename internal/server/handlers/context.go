package handlers

import (
	"context"

	"github.com/iudanet/taskkeeper/internal/models"
)

// contextKey is a private type so context values set here cannot collide
// with values set by other packages
type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// ContextWithSession attaches the authenticated user and the raw session
// token to the context. The auth middleware calls this after the full gate
// has passed; handlers read both via the getters below.
func ContextWithSession(ctx context.Context, user *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// UserFromContext returns the authenticated user attached by the middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// TokenFromContext returns the raw session token attached by the middleware.
// Logout uses it to revoke exactly the session the request arrived on.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}
