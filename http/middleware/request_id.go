package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/whisperwall/whisperwall"
)

// RequestID adds a uuid to the request context under whisperwall.RequestIDKey.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), whisperwall.RequestIDKey, uuid.NewString())
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
