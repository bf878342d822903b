package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
//
// Every Visitor shares the limit and burst Visitors was constructed with.
type Visitors struct {
	limit rate.Limit
	burst int

	val map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors limiting each IP address
// to limit requests per second with bursts of up to burst.
//
// Use rate.Every to express a limit as a window,
// e.g., rate.Every(15*time.Minute/10) for 10 requests every 15 minutes.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	return &Visitors{limit: limit, burst: burst, val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > 60*time.Minute {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler.
//
// Requests over the Visitor's limit receive 429 with msg as the body.
// Every response carries RateLimit-Limit and RateLimit-Remaining headers;
// rejected responses add RateLimit-Reset with the seconds until the next
// request would be admitted.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors, msg string) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := visitors.Fetch(ClientIPAddress(r)).Limiter
			allowed := lim.Allow()

			remaining := int(lim.Tokens())
			if remaining < 0 {
				remaining = 0
			}

			w.Header().Set("RateLimit-Limit", strconv.Itoa(lim.Burst()))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				rsv := lim.Reserve()
				delay := rsv.Delay()
				rsv.Cancel()

				w.Header().Set("RateLimit-Reset", strconv.Itoa(int(delay.Seconds())+1))
				http.Error(w, msg, http.StatusTooManyRequests)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
