package utils

import "context"

type contextKey string

const usernameKey contextKey = "username"

// ContextWithUsername returns a context carrying the authenticated caller's
// username. Set by the auth middleware after token validation.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext extracts the authenticated username from the request
// context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}
