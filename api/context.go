package api

import (
	"context"

	"github.com/farhanrmdhni/portfolio-backend/auth"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser adds the authenticated admin to the context
func ctxWithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated admin from the context, nil
// when the request did not pass the auth middleware.
func ctxGetUser(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userKey).(*auth.User)
	return user
}
