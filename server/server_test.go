package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"github.com/whisperwall/whisperwall/http/session"
	"github.com/whisperwall/whisperwall/server"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
)

func TestNewConfig(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "TESTING")
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://whisper.example.com")
	t.Setenv("AUDIT_SINK", "redis")
	t.Setenv("TLS_CERT", "cert.pem")
	t.Setenv("TLS_KEY", "key.pem")

	// Act
	cfg := server.NewConfig()

	// Assert
	require.Equal(t, whisperwall.Testing, cfg.Env)
	require.Equal(t, ":8080", cfg.Port)
	require.Equal(t, "https://whisper.example.com", cfg.BaseURL)
	require.Equal(t, server.AuditSinkRedis, cfg.AuditSink)
	require.True(t, cfg.ServesTLS())
}

func TestNewConfigDefaults(t *testing.T) {
	// Act
	cfg := server.NewConfig()

	// Assert
	require.Equal(t, ":3000", cfg.Port)
	require.Equal(t, server.AuditSinkPostgres, cfg.AuditSink)
	require.Equal(t, "whisperwall", cfg.SessionName)
	require.False(t, cfg.ServesTLS())
}

type userStoreStub struct{}

func (userStoreStub) Create(*whisperwall.User) error { return nil }
func (userStoreStub) FindByID(uint) (whisperwall.User, error) {
	return whisperwall.User{}, whisperwall.ErrNotFound
}
func (userStoreStub) FindByUsername(string) (whisperwall.User, error) {
	return whisperwall.User{}, whisperwall.ErrNotFound
}
func (userStoreStub) FindOrCreateByGoogleID(string) (whisperwall.User, error) {
	return whisperwall.User{}, whisperwall.ErrNotFound
}
func (userStoreStub) SaveSecret(uint, string) error       { return nil }
func (userStoreStub) WithSecrets() ([]whisperwall.User, error) { return nil, nil }

type oauthStub struct{}

func (oauthStub) LoginURL() (string, error)  { return "https://accounts.google.com", nil }
func (oauthStub) VerifyState(string) error   { return nil }
func (oauthStub) Exchange(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{}, nil
}
func (oauthStub) FetchUser(context.Context, *oauth2.Token) (*goauth2.Userinfo, error) {
	return &goauth2.Userinfo{}, nil
}

func TestNewAssemblesRouter(t *testing.T) {
	// Arrange
	cfg := server.NewConfig()
	cfg.Env = whisperwall.Testing

	// Act
	s, err := server.New(cfg,
		server.WithAuditRecorder(audit.NopRecorder{}),
		server.WithOAuthService(oauthStub{}),
		server.WithSessionStore(session.NewStub(false)),
		server.WithUserStorer(userStoreStub{}),
	)

	// Assert
	require.Nil(t, err)

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
