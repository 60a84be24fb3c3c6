// ABOUTME: Request context propagation for the authenticated username
// ABOUTME: Provides WithUser/UserFromContext used by downstream handlers

package gate

import "context"

// userContextKey is the key type for storing the username in a
// context.Context.
type userContextKey struct{}

// WithUser returns a new context with the authenticated username
// attached.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userContextKey{}, username)
}

// UserFromContext retrieves the authenticated username from the
// context, returning "" if the request did not pass the gate.
func UserFromContext(ctx context.Context) string {
	username, _ := ctx.Value(userContextKey{}).(string)
	return username
}
