package auth

import "context"

// Context is the per-request annotation produced by the middleware. It says
// whether a valid credential was presented and, if so, for which user.
type Context struct {
	Authenticated bool
	UserID        string
}

type ctxKey struct{}

// WithContext attaches the auth annotation to ctx.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the auth annotation, or the unauthenticated zero
// value when none was attached.
func FromContext(ctx context.Context) Context {
	ac, _ := ctx.Value(ctxKey{}).(Context)
	return ac
}
