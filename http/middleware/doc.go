/*
The middleware package defines what a middleware is in whisperwall and the set of middlewares
the application composes into its handler chains.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- RequestID
- RequireAuthed
- RequireUnauthed

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	adpts := []middleware.Adapter{
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(responder, userStore),
	}

RateLimit is attached per-route, enclosing its own *Visitors,
so distinct endpoints count against distinct windows.
*/
package middleware
