package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout wraps a handler to bound each request with a context
// timeout. The export pipeline itself has no internal suspension points;
// the timeout bounds the upstream invoicing API calls.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
