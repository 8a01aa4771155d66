package auth

import "context"

type callerContextKey struct{}

// WithCaller returns a context carrying the authenticated user id for the
// current request. The session middleware is the only writer.
func WithCaller(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerContextKey{}, userID)
}

// CallerFromContext returns the authenticated user id, or false when the
// request carries no verified session.
func CallerFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(callerContextKey{}).(string)
	return userID, ok && userID != ""
}
