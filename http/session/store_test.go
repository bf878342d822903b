package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/http/session"
)

func TestNewStoreService(t *testing.T) {
	// Arrange
	notHex := "😅"
	hex := "ABCD"

	// Act
	svc, err := session.NewStoreService(session.Config{
		Env:         whisperwall.Testing,
		SessionName: "whisperwall",
		AuthKey:     notHex,
	})

	// Assert
	require.NotNil(t, err)
	require.Zero(t, svc)

	// Act
	svc, err = session.NewStoreService(session.Config{
		Env:         whisperwall.Testing,
		SessionName: "whisperwall",
		AuthKey:     hex,
		EncryptKey:  notHex,
	})

	// Assert
	require.NotNil(t, err)
	require.Zero(t, svc)

	// Act
	svc, err = session.NewStoreService(session.Config{
		Env:        whisperwall.Testing,
		AuthKey:    hex,
		EncryptKey: hex,
	})

	// Assert: SessionName is required
	require.ErrorIs(t, err, whisperwall.ErrBadConfig)

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	svc, err = session.NewStoreService(session.Config{
		Env:         whisperwall.Testing,
		SessionName: "whisperwall",
		AuthKey:     hex,
		EncryptKey:  hex,
	})

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}
