/*
Package auth holds both halves of how a user proves who they are.

# Local credentials

Passwords are hashed with bcrypt before storage and verified with a
constant-time comparison. Nothing outside this package touches raw
credential material.

# Google

The OAuth authorization-code handshake is delegated to golang.org/x/oauth2
and the resulting profile is fetched through google.golang.org/api. Only the
profile scope is requested, limiting blast radius if a token is intercepted.
The state parameter round-tripped through the provider is a short-lived
signed JWT so the callback can reject forged or replayed redirects.
*/
package auth
