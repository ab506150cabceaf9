// Package requestid carries a per-request correlation ID through contexts and
// across the hop to the backend.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh request ID
func New() string {
	return uuid.NewString()
}

// WithContext returns a copy of ctx carrying id
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID stored in ctx, or "" if there is none
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
