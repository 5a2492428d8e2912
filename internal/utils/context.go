package utils

import (
	"context"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"
const ContextRoleKey contextKey = "role"

// Identity is the resolved result of a successful token verification: the
// owning user and their role, nothing else. Handlers that need the full user
// record look it up themselves.
type Identity struct {
	UserID string
	Role   string
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role := ctx.Value(ContextRoleKey)
	roleStr, ok := role.(string)
	return roleStr, ok
}

// WithIdentity stores a verified identity on the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, ContextUserIDKey, id.UserID)
	return context.WithValue(ctx, ContextRoleKey, id.Role)
}
