/*
Package server initializes and manages a whisperwall app with sane defaults.

The main entrypoint is the [Server] type,
constructed with [New] from a [Config] (usually [NewConfig]).
[*Server.Guide] begins the app's web server listening on PORT,
adding a TLS listener when TLS_CERT and TLS_KEY name a PEM pair.
Stop the web server with [*Server.Shutdown] or by sending a signal [*Server.Guide] listens for.

# Configuration

A developer configures the app through environment variables.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - AUDIT_SINK: where audit events land, "postgres" or "redis"; default: postgres
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the address surfaced in generic error messages
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the libpq sslmode; default: prefer
  - DATABASE_URL: the fully-qualified connection string; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - ENVIRONMENT: the environment the application is running in; cf. [whisperwall.Environment]
  - GOOGLE_CLIENT_ID: the OAuth client ID issued by Google
  - GOOGLE_CLIENT_SECRET: the OAuth client secret issued by Google
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - OAUTH_REDIRECT_URL: the absolute URL Google sends the client back to
  - OAUTH_STATE_KEY: the key signing the OAuth state parameter
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating to Redis
  - REDIS_URI: host:port of a Redis server; backs sessions and the redis audit sink
  - SENTRY_DSN: when set, errors and panics report to Sentry
  - SERVER_IDLE_TIMEOUT: the keep-alive idle timeout, per [time.ParseDuration]; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPT_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_NAME: the session and cookie name; default: whisperwall
  - TLS_CERT: filepath to a PEM certificate; with TLS_KEY, enables the TLS listener
  - TLS_KEY: filepath to the matching PEM private key
  - TLS_PORT: the port the TLS listener binds; default: :443
*/
package server
