package auth

import (
	"context"

	"vibecheck/internal/models"
)

type ctxKey string

const userKey ctxKey = "currentUser"

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the resolved user, or nil on unauthenticated routes.
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}
