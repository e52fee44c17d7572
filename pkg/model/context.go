package model

import "context"

type ctxKey int

var userKey ctxKey

// NewContextWithUser returns a new [context.Context] carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user stored in ctx, if any. Public
// HTTP routes do not have a user in the context.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
