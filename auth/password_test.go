package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("Blank", func(t *testing.T) {
		// Act
		hash, err := auth.HashPassword("")

		// Assert
		require.ErrorIs(t, err, auth.ErrNotValid)
		require.Nil(t, hash)
	})

	t.Run("Round-Trip", func(t *testing.T) {
		// Arrange
		password := "correct horse battery staple"

		// Act
		hash, err := auth.HashPassword(password)

		// Assert
		require.Nil(t, err)
		require.NotContains(t, string(hash), password)
		require.Nil(t, auth.ComparePassword(hash, password))
	})

	t.Run("Unique-Salts", func(t *testing.T) {
		// Act
		first, err := auth.HashPassword("hunter2")
		require.Nil(t, err)
		second, err := auth.HashPassword("hunter2")
		require.Nil(t, err)

		// Assert
		require.NotEqual(t, first, second)
	})
}

func TestComparePassword(t *testing.T) {
	// Arrange
	hash, err := auth.HashPassword("hunter2")
	require.Nil(t, err)

	t.Run("Mismatch", func(t *testing.T) {
		// Act + Assert
		require.ErrorIs(t, auth.ComparePassword(hash, "hunter3"), auth.ErrNotValid)
	})

	t.Run("Not-A-Hash", func(t *testing.T) {
		// Act + Assert
		require.ErrorIs(t, auth.ComparePassword([]byte("plaintext"), "plaintext"), auth.ErrUnexpected)
	})
}
