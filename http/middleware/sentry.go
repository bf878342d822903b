package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/whisperwall/whisperwall"
)

// ReportPanic recovers and reports panics to Sentry by wrapping the handler
// in sentryhttp middleware.
//
// In DEVELOPMENT and TESTING environments, panics propagate untouched.
func ReportPanic(env whisperwall.Environment) Adapter {
	if env.IsDevelopment() || env.IsTesting() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
