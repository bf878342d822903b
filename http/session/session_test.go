package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall/http/session"
)

func TestSessionRegisterUser(t *testing.T) {
	// Arrange
	stub := session.NewStub(false)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	// Act + Assert: no user before registration
	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)

	// Act
	require.Nil(t, s.RegisterUser(w, r, 42))

	// Assert
	uid, err := s.UserID()
	require.Nil(t, err)
	require.Equal(t, uint(42), uid)
}

func TestSessionDeregisterUser(t *testing.T) {
	// Arrange
	stub := session.NewStub(true)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	uid, err := s.UserID()
	require.Nil(t, err)
	require.Equal(t, uint(1), uid)

	// Act
	require.Nil(t, s.DeregisterUser(w, r))

	// Assert
	_, err = s.UserID()
	require.ErrorIs(t, err, session.ErrNoUser)
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	stub := session.NewStub(false)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	// Act
	require.Nil(t, s.SetFlash(w, r, session.Flash{Class: session.FlashError, Msg: session.BadCredsMsg}))
	flashes := s.Flashes(w, r)

	// Assert: flashes drain after access
	require.Len(t, flashes, 1)
	require.Equal(t, session.BadCredsMsg, flashes[0].Msg)
	require.Empty(t, s.Flashes(w, r))
}

func TestSessionSetGet(t *testing.T) {
	// Arrange
	stub := session.NewStub(false)
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	// Act
	require.Nil(t, s.Set(w, r, "next", "/submit"))

	// Assert
	require.Equal(t, "/submit", s.Get("next"))
	require.Nil(t, s.Get("missing"))
}
