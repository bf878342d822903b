package resp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/http/template"
	"github.com/whisperwall/whisperwall/logger"
)

func TestResponderCurrentUser(t *testing.T) {
	// Arrange
	d := NewResponder(WithLogger(logger.New()))
	u := whisperwall.User{Username: "tester"}
	ctx := context.WithValue(context.Background(), whisperwall.CurrentUserKey, u)

	// Act
	actual, err := d.CurrentUser(ctx)

	// Assert
	require.Nil(t, err)
	require.Equal(t, u, actual)

	// Act
	_, err = d.CurrentUser(context.Background())

	// Assert
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResponderRedirect(t *testing.T) {
	d := NewResponder(WithLogger(logger.New()), WithRootUrl("https://example.com"))

	tcs := []struct {
		name         string
		opts         []Fn
		expectedCode int
		expectedUrl  string
	}{
		{"Zero-Value", nil, http.StatusFound, "https://example.com"},
		{"With-Url", []Fn{Url("/login")}, http.StatusFound, "/login"},
		{"With-3xx", []Fn{Url("/login"), Code(http.StatusMovedPermanently)}, http.StatusMovedPermanently, "/login"},
		{"With-4xx", []Fn{Url("/login"), Code(http.StatusUnauthorized)}, http.StatusSeeOther, "/login"},
		{"With-5xx", []Fn{Url("/login"), Code(http.StatusBadGateway)}, http.StatusTemporaryRedirect, "/login"},
		{"With-Param", []Fn{Url("/login"), Param("next", "/secrets")}, http.StatusFound, "/login?next=%2Fsecrets"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			// Act
			err := d.Redirect(w, r, tc.opts...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expectedCode, w.Code)
			require.Equal(t, tc.expectedUrl, w.Header().Get("Location"))
		})
	}
}

func TestResponderJson(t *testing.T) {
	// Arrange
	d := NewResponder(WithLogger(logger.New()))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)

	// Act
	err := d.Json(w, r, Code(http.StatusOK), Data(map[string]any{"status": "ok"}))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))

	var payload map[string]any
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, map[string]any{"status": "ok"}, payload["data"])
}

func TestResponderHtml(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"tmpl/page.tmpl": {Data: []byte(`<p>{{ .Data }}</p>`)},
	}
	d := NewResponder(
		WithLogger(logger.New()),
		WithParser(template.NewParser(template.WithFS(fsys))),
	)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	err := d.Html(w, r, Code(http.StatusOK), Tmpls("tmpl/page.tmpl"), Data("a secret"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<p>a secret</p>", w.Body.String())
}

func TestResponderHtmlNoTemplates(t *testing.T) {
	// Arrange
	d := NewResponder(
		WithLogger(logger.New()),
		WithParser(template.NewParser(template.WithFS(fstest.MapFS{}))),
	)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	err := d.Html(w, r)

	// Assert
	require.ErrorIs(t, err, ErrMissingData)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestResponderErr(t *testing.T) {
	// Arrange
	d := NewResponder(WithLogger(logger.New()))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	d.Err(w, r, ErrInvalid)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), ErrInvalid.Error())
}
