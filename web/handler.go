// Package web implements the application's HTTP surface:
// local and Google OAuth login, anonymous secret publishing, and supporting pages.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/auth"
	"github.com/whisperwall/whisperwall/http/resp"
	"github.com/whisperwall/whisperwall/http/session"
	"github.com/whisperwall/whisperwall/logger"
)

// Template filepaths the handlers render, relative to the embedded fs.FS.
const (
	authedTmpl   = "tmpl/layout/authenticated_base.tmpl"
	errTmpl      = "tmpl/error.tmpl"
	unauthedTmpl = "tmpl/layout/unauthenticated_base.tmpl"

	homeTmpl     = "tmpl/home.tmpl"
	loginTmpl    = "tmpl/login.tmpl"
	registerTmpl = "tmpl/register.tmpl"
	secretsTmpl  = "tmpl/secrets.tmpl"
	submitTmpl   = "tmpl/submit.tmpl"
	termsTmpl    = "tmpl/terms.tmpl"
)

// A Pinger reports whether backing storage is reachable.
type Pinger interface {
	Ping() error
}

// A Handler holds the services every endpoint draws upon.
type Handler struct {
	*resp.Responder

	audit   audit.Recorder
	logger  logger.Logger
	oauth   auth.OAuthService
	pinger  Pinger
	started time.Time
	users   whisperwall.UserStorer
}

// A Config provides the services New composes into a *Handler.
type Config struct {
	Audit     audit.Recorder
	Logger    logger.Logger
	OAuth     auth.OAuthService
	Pinger    Pinger
	Responder *resp.Responder
	Users     whisperwall.UserStorer
}

// New constructs a *Handler from the Config,
// substituting no-op defaults for the optional audit recorder and logger.
func New(cfg Config) *Handler {
	h := &Handler{
		Responder: cfg.Responder,
		audit:     cfg.Audit,
		logger:    cfg.Logger,
		oauth:     cfg.OAuth,
		pinger:    cfg.Pinger,
		started:   time.Now(),
		users:     cfg.Users,
	}

	if h.audit == nil {
		h.audit = audit.NopRecorder{}
	}

	if h.logger == nil {
		h.logger = logger.New()
	}

	return h
}

// currentUser pulls the whisperwall.User out of the request context.
func (h *Handler) currentUser(r *http.Request) (whisperwall.User, bool) {
	val, err := h.CurrentUser(r.Context())
	if err != nil {
		return whisperwall.User{}, false
	}

	u, ok := val.(whisperwall.User)
	return u, ok
}

// session pulls the session out of the request context.
func (h *Handler) session(r *http.Request) (session.Session, error) {
	return h.Session(r.Context())
}

// record persists the audit Event, logging failures instead of surfacing them.
func (h *Handler) record(ctx context.Context, event audit.Event) {
	if err := h.audit.Record(ctx, event); err != nil {
		h.logger.Error("failed recording audit event: "+err.Error(), &logger.LogContext{
			Error: err,
			Data:  map[string]any{"action": event.Action, "actor": event.Actor},
		})
	}
}

// ipAddr pulls the client IP promoted to the request context by middleware.
func ipAddr(r *http.Request) string {
	if val, ok := r.Context().Value(whisperwall.IpAddrKey).(string); ok {
		return val
	}

	return ""
}
