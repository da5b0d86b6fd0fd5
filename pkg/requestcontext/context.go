// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them. Keeping the package free
// of net/http lets services import only what they need.
package requestcontext

import (
	"context"

	id "policyhub/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	accountIDKey struct{}
	requestIDKey struct{}
)

// WithAccountID attaches the authenticated account ID to the context.
func WithAccountID(ctx context.Context, accountID id.AccountID) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// AccountID returns the authenticated account ID, or zero when absent.
func AccountID(ctx context.Context) id.AccountID {
	v, _ := ctx.Value(accountIDKey{}).(id.AccountID)
	return v
}

// WithRequestID attaches a correlation ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or empty string when absent.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}
