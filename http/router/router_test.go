package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/http/middleware"
	"github.com/whisperwall/whisperwall/http/router"
)

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	var got []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = append(got, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	r := router.New(whisperwall.Testing, middleware.NoopAdapter, nil)
	r.OnEveryRequest(tag("every"))
	r.HandleRoutes([]router.Route{
		{
			Path:    "/ping",
			Method:  http.MethodGet,
			Handler: func(w http.ResponseWriter, r *http.Request) { got = append(got, "handler") },
			Middlewares: []middleware.Adapter{
				tag("route"),
			},
		},
	}, tag("group"))

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	require.Equal(t, []string{"every", "group", "route", "handler"}, got)

	// Act
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

	// Assert
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterAssets(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{"styles.css": {Data: []byte("body {}")}}
	r := router.New(whisperwall.Testing, middleware.NoopAdapter, fsys)

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/styles.css", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "body {}", w.Body.String())
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	r := router.New(whisperwall.Testing, middleware.NoopAdapter, nil)
	r.HandleNotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}
