package server

import (
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/auth"
	"github.com/whisperwall/whisperwall/http/session"
	"github.com/whisperwall/whisperwall/logger"
)

// An Option swaps out a component New would otherwise construct from the Config.
type Option func(*Server)

// WithAuditRecorder uses the provided audit.Recorder instead of the Config's sink.
func WithAuditRecorder(r audit.Recorder) Option {
	return func(s *Server) { s.audit = r }
}

// WithLogger uses the provided logger.Logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.l = l }
}

// WithOAuthService uses the provided auth.OAuthService
// instead of constructing one from the GOOGLE env vars.
func WithOAuthService(svc auth.OAuthService) Option {
	return func(s *Server) { s.oauth = svc }
}

// WithSessionStore uses the provided session.SessionStorer.
func WithSessionStore(store session.SessionStorer) Option {
	return func(s *Server) { s.sessions = store }
}

// WithUserStorer uses the provided whisperwall.UserStorer
// instead of connecting to Postgres.
//
// When both WithUserStorer and WithAuditRecorder are supplied,
// no database connection is opened.
func WithUserStorer(users whisperwall.UserStorer) Option {
	return func(s *Server) { s.users = users }
}
