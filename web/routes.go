package web

import (
	"net/http"
	"time"

	"github.com/whisperwall/whisperwall/http/middleware"
	"github.com/whisperwall/whisperwall/http/router"
	"golang.org/x/time/rate"
)

// Fixed rejection messages for the per-endpoint rate limiters.
const (
	loginLimitMsg    = "Too many requests sent from this IP, please try again after 15 minutes"
	registerLimitMsg = "Too many accounts created from this IP, please try again after 15 minutes"
)

// limitWindow admits 10 requests per IP every 15 minutes.
const (
	limitWindow = 15 * time.Minute
	limitMax    = 10
)

func newLimiter() *middleware.Visitors {
	return middleware.NewVisitors(rate.Every(limitWindow/limitMax), limitMax)
}

// Routes returns every endpoint the application serves,
// grouped by the authentication requirement the router applies.
//
// The login and register forms each carry their own rate limiter instance,
// so attempts against one do not count against the other.
func (h *Handler) Routes() (open, authed []router.Route) {
	open = []router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.Home},
		{Path: "/auth/google", Method: http.MethodGet, Handler: h.OAuthRedirect},
		{Path: "/auth/google/secretapp", Method: http.MethodGet, Handler: h.OAuthCallback},
		{
			Path:        "/login",
			Method:      http.MethodGet,
			Handler:     h.LoginForm,
			Middlewares: []middleware.Adapter{middleware.RateLimit(newLimiter(), loginLimitMsg)},
		},
		{Path: "/login", Method: http.MethodPost, Handler: h.Login},
		{
			Path:        "/register",
			Method:      http.MethodGet,
			Handler:     h.RegisterForm,
			Middlewares: []middleware.Adapter{middleware.RateLimit(newLimiter(), registerLimitMsg)},
		},
		{Path: "/register", Method: http.MethodPost, Handler: h.Register},
		{Path: "/terms", Method: http.MethodGet, Handler: h.Terms},
		{Path: "/secrets", Method: http.MethodGet, Handler: h.Secrets},
		{Path: "/logout", Method: http.MethodGet, Handler: h.Logout},
		{Path: "/healthcheck", Method: http.MethodGet, Handler: h.Healthcheck},
	}

	authed = []router.Route{
		{Path: "/submit", Method: http.MethodGet, Handler: h.SubmitForm},
		{Path: "/submit", Method: http.MethodPost, Handler: h.Submit},
	}

	return open, authed
}
