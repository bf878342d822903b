package server

import (
	"os"
	"time"

	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/postgres"
)

// Environment variable names the server reads at boot.
const (
	auditSinkEnvVar   = "AUDIT_SINK"
	baseURLEnvVar     = "BASE_URL"
	contactEnvVar     = "CONTACT_US_EMAIL"
	environmentEnvVar = "ENVIRONMENT"
	portEnvVar        = "PORT"
	tlsCertEnvVar     = "TLS_CERT"
	tlsKeyEnvVar      = "TLS_KEY"
	tlsPortEnvVar     = "TLS_PORT"

	dbHostEnvVar    = "DATABASE_HOST"
	dbNameEnvVar    = "DATABASE_NAME"
	dbPassEnvVar    = "DATABASE_PASSWORD"
	dbPortEnvVar    = "DATABASE_PORT"
	dbSSLModeEnvVar = "DATABASE_SSLMODE"
	dbURLEnvVar     = "DATABASE_URL"
	dbUserEnvVar    = "DATABASE_USER"

	googleClientEnvVar  = "GOOGLE_CLIENT_ID"
	googleSecretEnvVar  = "GOOGLE_CLIENT_SECRET"
	oauthRedirectEnvVar = "OAUTH_REDIRECT_URL"
	oauthStateKeyEnvVar = "OAUTH_STATE_KEY"

	redisURIEnvVar  = "REDIS_URI"
	redisPassEnvVar = "REDIS_PASSWORD"

	sessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	sessionEncryptKeyEnvVar = "SESSION_ENCRYPT_KEY"
	sessionNameEnvVar       = "SESSION_NAME"

	serverIdleTimeoutEnvVar  = "SERVER_IDLE_TIMEOUT"
	serverReadTimeoutEnvVar  = "SERVER_READ_TIMEOUT"
	serverWriteTimeoutEnvVar = "SERVER_WRITE_TIMEOUT"
)

// Defaults applied when the corresponding env var is unset.
const (
	defaultBaseURL      = "http://localhost:3000"
	defaultContact      = "hello@whisperwall.app"
	defaultDBHost       = "localhost"
	defaultDBPort       = "5432"
	defaultDBSSLMode    = "prefer"
	defaultPort         = ":3000"
	defaultSessionName  = "whisperwall"
	defaultTLSPort      = ":443"
	defaultIdleTimeout  = 120 * time.Second
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// AuditSink selects where audit events land.
type AuditSink string

const (
	AuditSinkPostgres AuditSink = "postgres"
	AuditSinkRedis    AuditSink = "redis"
)

// A Config gathers everything the server bootstrap needs from the process environment.
type Config struct {
	AuditSink AuditSink
	BaseURL   string
	Contact   string
	Env       whisperwall.Environment
	Port      string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string
	OAuthStateKey      string

	RedisPass string
	RedisURI  string

	SessionAuthKey    string
	SessionEncryptKey string
	SessionName       string

	TLSCert string
	TLSKey  string
	TLSPort string

	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConfig assembles a Config from environment variables,
// applying defaults for anything unset.
func NewConfig() Config {
	return Config{
		AuditSink: AuditSink(whisperwall.EnvVarOrString(auditSinkEnvVar, string(AuditSinkPostgres))),
		BaseURL:   whisperwall.EnvVarOrString(baseURLEnvVar, defaultBaseURL),
		Contact:   whisperwall.EnvVarOrString(contactEnvVar, defaultContact),
		Env:       whisperwall.EnvVarOrEnv(environmentEnvVar, whisperwall.Development),
		Port:      normalizePort(whisperwall.EnvVarOrString(portEnvVar, defaultPort)),

		GoogleClientID:     os.Getenv(googleClientEnvVar),
		GoogleClientSecret: os.Getenv(googleSecretEnvVar),
		OAuthRedirectURL:   os.Getenv(oauthRedirectEnvVar),
		OAuthStateKey:      os.Getenv(oauthStateKeyEnvVar),

		RedisPass: os.Getenv(redisPassEnvVar),
		RedisURI:  os.Getenv(redisURIEnvVar),

		SessionAuthKey:    os.Getenv(sessionAuthKeyEnvVar),
		SessionEncryptKey: os.Getenv(sessionEncryptKeyEnvVar),
		SessionName:       whisperwall.EnvVarOrString(sessionNameEnvVar, defaultSessionName),

		TLSCert: os.Getenv(tlsCertEnvVar),
		TLSKey:  os.Getenv(tlsKeyEnvVar),
		TLSPort: normalizePort(whisperwall.EnvVarOrString(tlsPortEnvVar, defaultTLSPort)),

		IdleTimeout:  whisperwall.EnvVarOrDuration(serverIdleTimeoutEnvVar, defaultIdleTimeout),
		ReadTimeout:  whisperwall.EnvVarOrDuration(serverReadTimeoutEnvVar, defaultReadTimeout),
		WriteTimeout: whisperwall.EnvVarOrDuration(serverWriteTimeoutEnvVar, defaultWriteTimeout),
	}
}

// ServesTLS asserts whether the Config carries a usable certificate pair.
func (c Config) ServesTLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// NewPostgresConfig constructs a *postgres.CxnConfig from the DATABASE env vars.
//
// DATABASE_URL wins over the discrete parts when set.
func NewPostgresConfig(env whisperwall.Environment) *postgres.CxnConfig {
	if url := os.Getenv(dbURLEnvVar); url != "" {
		return &postgres.CxnConfig{IsTestDB: env.IsTesting(), URL: url}
	}

	return &postgres.CxnConfig{
		Host:     whisperwall.EnvVarOrString(dbHostEnvVar, defaultDBHost),
		IsTestDB: env.IsTesting(),
		Name:     os.Getenv(dbNameEnvVar),
		Password: os.Getenv(dbPassEnvVar),
		Port:     whisperwall.EnvVarOrString(dbPortEnvVar, defaultDBPort),
		SSLMode:  whisperwall.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
		User:     os.Getenv(dbUserEnvVar),
	}
}

func normalizePort(port string) string {
	if port == "" || port[0] == ':' {
		return port
	}

	return ":" + port
}
