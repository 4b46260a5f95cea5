package auth

import (
	"context"

	"github.com/quatet/storefront-api/pkg/enums"
)

type contextKey string

const (
	ctxToken  contextKey = "bearer_token"
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "user_role"
)

// WithToken stores the raw platform bearer token for downstream gateway calls.
// It is re-read from the session store on every request, never cached across
// requests, so a logout elsewhere is picked up on the next call.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxToken, token)
}

// TokenFromContext returns the bearer token for the current request, or "".
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// WithUserID stores the authenticated user's identifier.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserIDFromContext returns the authenticated user's identifier, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

// WithRole stores the authenticated user's role.
func WithRole(ctx context.Context, role enums.UserRole) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}

// RoleFromContext returns the authenticated user's role, or "".
func RoleFromContext(ctx context.Context) enums.UserRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.UserRole); ok {
		return v
	}
	return ""
}
