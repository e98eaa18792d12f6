// Package requestid propagates a per-request tracing identifier. The id
// travels explicitly in a context.Context: inbound HTTP handlers store it
// with Middleware, and the API clients attach it to outbound calls as the
// DM-Request-Id header when present.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the tracing id.
const Header = "DM-Request-Id"

type contextKey struct{}

// New returns a fresh tracing id.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the tracing id stored in ctx. Safe to call with any
// context, including context.Background(); a missing id reports ok=false
// rather than failing.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Middleware stores the inbound request's tracing id in the request
// context, generating one when the header is missing, and echoes it on
// the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = New()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
