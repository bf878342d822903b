package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/auth"
	"github.com/whisperwall/whisperwall/http/middleware"
	"github.com/whisperwall/whisperwall/http/resp"
	"github.com/whisperwall/whisperwall/http/router"
	"github.com/whisperwall/whisperwall/http/session"
	"github.com/whisperwall/whisperwall/http/template"
	"github.com/whisperwall/whisperwall/logger"
	"github.com/whisperwall/whisperwall/postgres"
	"github.com/whisperwall/whisperwall/web"
	"gorm.io/gorm"
)

// A Server manages and exposes all components of a whisperwall app to one another.
type Server struct {
	*resp.Responder
	Router *router.Router

	audit    audit.Recorder
	cfg      Config
	db       *postgres.DB
	l        logger.Logger
	oauth    auth.OAuthService
	sessions session.SessionStorer
	srv      *http.Server
	tlsSrv   *http.Server
	users    whisperwall.UserStorer
}

// New constructs a Server from the Config and the provided options.
// Options overwrite the components New would otherwise build from the Config.
func New(cfg Config, opts ...Option) (*Server, error) {
	s := &Server{cfg: cfg}

	for _, opt := range opts {
		opt(s)
	}

	if s.l == nil {
		s.l = logger.New(
			logger.WithEnv(cfg.Env.String()),
			logger.WithLevel(logger.NewLogLevel(whisperwall.EnvVarOrString("LOG_LEVEL", "INFO"))),
		)
	}

	if s.users == nil || s.audit == nil {
		db, err := postgres.Connect(NewPostgresConfig(cfg.Env), postgres.Migrations(), cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("%w: database: %s", whisperwall.ErrBadConfig, err)
		}

		s.db = postgres.NewDB(db)
		if s.users == nil {
			s.users = postgres.NewUserStore(s.db)
		}

		if s.audit == nil {
			if s.audit, err = newRecorder(cfg, db); err != nil {
				return nil, err
			}
		}
	}

	if s.sessions == nil {
		store, err := newSessionStore(cfg)
		if err != nil {
			return nil, err
		}

		s.sessions = store
	}

	if s.oauth == nil {
		svc, err := auth.NewService(cfg.OAuthStateKey, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
		if err != nil {
			return nil, err
		}

		s.oauth = svc
	}

	s.Responder = newResponder(s.l, cfg)
	s.Router = s.newRouter()

	s.srv = &http.Server{
		Addr:         cfg.Port,
		Handler:      s.Router,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.ServesTLS() {
		s.tlsSrv = &http.Server{
			Addr:         cfg.TLSPort,
			Handler:      s.Router,
			IdleTimeout:  cfg.IdleTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}
	}

	return s, nil
}

// Guide begins the web server, and the TLS server when a certificate pair is configured.
//
// These, and (*Server).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (s *Server) Guide() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		sig := <-ch
		s.l.Info(fmt.Sprint("received shutdown signal: ", sig), nil)
		cancel()
	}()

	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			s.l.Error(fmt.Errorf("could not listen: %w", err).Error(), nil)
			cancel()
		}
	}()

	if s.tlsSrv != nil {
		go func() {
			s.l.Info(fmt.Sprintf("running TLS web server at %s", s.tlsSrv.Addr), nil)
			if err := s.tlsSrv.ListenAndServeTLS(s.cfg.TLSCert, s.cfg.TLSKey); err != http.ErrServerClosed {
				s.l.Error(fmt.Errorf("could not listen on TLS: %w", err).Error(), nil)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	return s.Shutdown()
}

// Shutdown gracefully shutdowns the web servers.
func (s *Server) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	if s.tlsSrv != nil {
		if err := s.tlsSrv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("could not shutdown TLS server: %w", err)
		}
	}

	if err := s.srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}

// newRecorder selects the audit sink the Config names.
func newRecorder(cfg Config, db *gorm.DB) (audit.Recorder, error) {
	switch cfg.AuditSink {
	case AuditSinkRedis:
		r, err := audit.NewRedisRecorder(cfg.RedisURI, cfg.RedisPass)
		if err != nil {
			return nil, fmt.Errorf("%w: audit: %s", whisperwall.ErrBadConfig, err)
		}

		return r, nil

	case AuditSinkPostgres, "":
		return audit.NewDBRecorder(db), nil

	default:
		return nil, fmt.Errorf("%w: unknown audit sink %q", whisperwall.ErrBadConfig, cfg.AuditSink)
	}
}

// newSessionStore backs sessions with Redis when a URI is configured, cookies otherwise.
func newSessionStore(cfg Config) (session.SessionStorer, error) {
	sc := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName,
	}

	opts := []session.ServiceOpt{session.WithMaxAge(3600 * 24)}
	if cfg.RedisURI != "" {
		opts = append(opts, session.WithRedis(cfg.RedisURI, cfg.RedisPass))
	}

	return session.NewStoreService(sc, opts...)
}

// newResponder configures the *resp.Responder handlers write responses with.
func newResponder(l logger.Logger, cfg Config) *resp.Responder {
	p := template.NewParser(template.WithFS(web.Templates()))
	p.AddFn(template.Env(cfg.Env))

	return resp.NewResponder(
		resp.WithAuthTemplate("tmpl/layout/authenticated_base.tmpl"),
		resp.WithContactErrMsg(fmt.Sprintf("Please contact us at %s.", cfg.Contact)),
		resp.WithErrTemplate("tmpl/error.tmpl"),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(cfg.BaseURL),
		resp.WithUnauthTemplate("tmpl/layout/unauthenticated_base.tmpl"),
	)
}

// newRouter assembles the middleware stack and the full route table.
func (s *Server) newRouter() *router.Router {
	logReq := middleware.LogRequest(s.l)
	r := router.New(s.cfg.Env, logReq, web.Assets())

	storer := func(id uint) (middleware.User, error) { return s.users.FindByID(id) }

	r.OnEveryRequest(
		middleware.CORS(s.cfg.BaseURL),
		middleware.ForceHTTPS(s.cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.InjectSession(s.sessions),
		middleware.CurrentUser(s.Responder, storer),
	)

	var pinger web.Pinger
	if s.db != nil {
		pinger = s.db
	}

	h := web.New(web.Config{
		Audit:     s.audit,
		Logger:    s.l,
		OAuth:     s.oauth,
		Pinger:    pinger,
		Responder: s.Responder,
		Users:     s.users,
	})

	open, authed := h.Routes()
	r.HandleRoutes(open)
	r.AuthedRoutes("/login", "/logout", authed)

	r.HandleNotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			s.Redirect(w, req, resp.ToRoot())
			return
		}

		w.WriteHeader(http.StatusNotFound)
	})

	return r
}
