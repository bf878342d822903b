package whisperwall_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall"
)

func TestUserHasAccess(t *testing.T) {
	// Arrange
	tcs := []struct {
		name     string
		user     whisperwall.User
		expected bool
	}{
		{"Zero-Value", whisperwall.User{}, false},
		{
			"Exists",
			whisperwall.User{Model: whisperwall.Model{ID: 1, CreatedAt: time.Now()}},
			true,
		},
		{
			"Soft-Deleted",
			whisperwall.User{Model: whisperwall.Model{
				ID:        1,
				CreatedAt: time.Now(),
				DeletedAt: whisperwall.DeletedTime{NullTime: sql.NullTime{Time: time.Now(), Valid: true}},
			}},
			false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act + Assert
			require.Equal(t, tc.expected, tc.user.HasAccess())
		})
	}
}

func TestUserHomePath(t *testing.T) {
	// Arrange
	anon := whisperwall.User{}
	member := whisperwall.User{Model: whisperwall.Model{ID: 1, CreatedAt: time.Now()}}

	// Act + Assert
	require.Equal(t, "/login", anon.HomePath())
	require.Equal(t, "/secrets", member.HomePath())
}

func TestNewGoogleUser(t *testing.T) {
	// Act
	first := whisperwall.NewGoogleUser("google-1")
	second := whisperwall.NewGoogleUser("google-2")

	// Assert
	require.Equal(t, "google-1", first.GoogleID.String)
	require.True(t, first.GoogleID.Valid)
	require.NotEmpty(t, first.Username)
	require.NotEqual(t, first.Username, second.Username)
}

func TestUserHasSecret(t *testing.T) {
	// Arrange
	none := whisperwall.User{}
	some := whisperwall.User{Secret: sql.NullString{String: "a penny saved", Valid: true}}

	// Act + Assert
	require.False(t, none.HasSecret())
	require.True(t, some.HasSecret())
}
