package routes

import "context"

type contextKey int

const identityKey contextKey = iota

// WithIdentity attaches the authenticated identity to the request context.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the authenticated identity, or "" for an
// unauthenticated context.
func IdentityFrom(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}
