package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall/http/middleware"
	"golang.org/x/time/rate"
)

const limitMsg = "Too many requests sent from this IP, please try again after 15 minutes"

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors(rate.Every(15*time.Minute/10), 10)

		// Act
		v1 := vs.Fetch("1.1.1.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("1.1.1.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors(rate.Every(15*time.Minute/10), 10)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				require.NotPanics(t, func() { vs.Fetch("1.1.1.1") })
			}()
		}

		wg.Wait()
	})
}

func TestRateLimit(t *testing.T) {
	send := func(h http.Handler, ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		r.Header.Set("X-Forwarded-For", ip)
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("Over-Limit", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors(rate.Every(15*time.Minute/10), 10)
		h := middleware.RateLimit(vs, limitMsg)(NoopHandler())

		// Act
		var last *httptest.ResponseRecorder
		for i := 0; i < 10; i++ {
			last = send(h, "1.1.1.1")
		}
		rejected := send(h, "1.1.1.1")

		// Assert
		require.Equal(t, http.StatusOK, last.Code)
		require.Equal(t, http.StatusTooManyRequests, rejected.Code)
		require.Contains(t, rejected.Body.String(), limitMsg)
		require.Equal(t, "10", rejected.Header().Get("RateLimit-Limit"))
		require.Equal(t, "0", rejected.Header().Get("RateLimit-Remaining"))
		require.NotEmpty(t, rejected.Header().Get("RateLimit-Reset"))
	})

	t.Run("Distinct-IPs", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors(rate.Every(15*time.Minute/10), 10)
		h := middleware.RateLimit(vs, limitMsg)(NoopHandler())

		// Act
		for i := 0; i < 11; i++ {
			send(h, "1.1.1.1")
		}
		other := send(h, "2.2.2.2")

		// Assert
		require.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("Distinct-RemoteAddrs", func(t *testing.T) {
		// Arrange: direct connections carry no forwarding headers
		vs := middleware.NewVisitors(rate.Every(15*time.Minute/10), 10)
		h := middleware.RateLimit(vs, limitMsg)(NoopHandler())

		direct := func(remoteAddr string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/login", nil)
			r.RemoteAddr = remoteAddr
			h.ServeHTTP(w, r)
			return w
		}

		// Act
		var last *httptest.ResponseRecorder
		for i := 0; i < 11; i++ {
			last = direct("203.0.113.10:50000")
		}
		other := direct("203.0.113.77:4711")

		// Assert
		require.Equal(t, http.StatusTooManyRequests, last.Code)
		require.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("Window-Reset", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors(rate.Every(5*time.Millisecond), 2)
		h := middleware.RateLimit(vs, limitMsg)(NoopHandler())

		// Act
		send(h, "1.1.1.1")
		send(h, "1.1.1.1")
		rejected := send(h, "1.1.1.1")
		time.Sleep(20 * time.Millisecond)
		allowed := send(h, "1.1.1.1")

		// Assert
		require.Equal(t, http.StatusTooManyRequests, rejected.Code)
		require.Equal(t, http.StatusOK, allowed.Code)
	})
}

func TestClientIPAddress(t *testing.T) {
	tcs := []struct {
		name       string
		header     string
		val        string
		remoteAddr string
		expected   string
	}{
		{"Forwarded-Wins", "X-Forwarded-For", "1.1.1.1", "203.0.113.10:50000", "1.1.1.1"},
		{"Falls-Back-To-RemoteAddr", "", "", "203.0.113.10:50000", "203.0.113.10"},
		{"Private-Headers-Fall-Back", "X-Forwarded-For", "10.0.0.1", "203.0.113.10:50000", "203.0.113.10"},
		{"RemoteAddr-Without-Port", "", "", "203.0.113.10", "203.0.113.10"},
		{"Nothing-Known", "", "", "", "0.0.0.0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/login", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				r.Header.Set(tc.header, tc.val)
			}

			// Act + Assert
			require.Equal(t, tc.expected, middleware.ClientIPAddress(r))
		})
	}
}

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		val      string
		expected string
	}{
		{"X-Forwarded-For", "X-Forwarded-For", "1.1.1.1", "1.1.1.1"},
		{"X-Real-Ip", "X-Real-Ip", "2.2.2.2", "2.2.2.2"},
		{"Skips-Private", "X-Forwarded-For", "1.1.1.1, 10.0.0.1", "1.1.1.1"},
		{"All-Private", "X-Forwarded-For", "10.0.0.1, 192.168.0.1", "0.0.0.0"},
		{"None", "", "", "0.0.0.0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			hm := make(http.Header)
			if tc.header != "" {
				hm.Set(tc.header, tc.val)
			}

			// Act + Assert
			require.Equal(t, tc.expected, middleware.GetIPAddress(hm))
		})
	}
}
