// Package ctxkeys provides typed accessors for request-scoped values.
package ctxkeys

import (
	"context"

	"github.com/vidstream/vidstream/internal/model"
)

// contextKey is a distinct type for context keys to avoid collisions
type contextKey string

const (
	UserKey contextKey = "user"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
