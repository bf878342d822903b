package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS restricts cross-origin access to the application's own base URL.
//
// The surface is form-driven HTML: only the methods the routes serve are
// allowed, and form posts need no headers beyond Content-Type.
func CORS(base string) Adapter {
	return handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedOrigins([]string{base}),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
		}),
	)
}
