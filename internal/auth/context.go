package auth

import "context"

type contextKey struct{}

// Identity is the verified caller identity resolved from the session cookie.
type Identity struct {
	Email string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Email returns the authenticated email, or "" when the request carries no
// verified identity.
func Email(ctx context.Context) string {
	id, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return id.Email
}
