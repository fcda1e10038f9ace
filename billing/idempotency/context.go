package idempotency

import "context"

type callerContextKey struct{}

// WithCallerContext attaches an audit identifier (typically a workflow or request id)
// that the coordinator stores on records it creates.
func WithCallerContext(ctx context.Context, callerContext string) context.Context {
	return context.WithValue(ctx, callerContextKey{}, callerContext)
}

// CallerContextFrom returns the identifier set by WithCallerContext, or "".
func CallerContextFrom(ctx context.Context) string {
	v, _ := ctx.Value(callerContextKey{}).(string)
	return v
}
