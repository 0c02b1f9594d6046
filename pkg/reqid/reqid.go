// Package reqid assigns every HTTP request an ID and carries it through the
// request context, the X-Request-ID response header, and — via
// logger.WithCtx — every structured log line the request produces. Clients
// of the sync API correlate a mutation they sent with the change frame they
// receive back by quoting this ID.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

type ctxKey struct{}

// Header is the propagation header, honoured inbound and set outbound.
const Header = "X-Request-ID"

// maxInboundLen caps client-supplied IDs so a hostile header cannot bloat
// log documents.
const maxInboundLen = 64

// New returns a 32-hex-char random request ID.
func New() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID in ctx, or "" when none was set.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses an inbound X-Request-ID when a gateway or proxy sent
// one, otherwise mints a fresh ID. Either way the ID ends up in the request
// context and on the response.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxInboundLen {
				id = New()
			}

			w.Header().Set(Header, id)

			ctx := WithValue(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
