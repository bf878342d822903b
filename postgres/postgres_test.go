package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCxnStr(t *testing.T) {
	t.Run("URL-Wins", func(t *testing.T) {
		// Arrange
		cfg := &CxnConfig{URL: "postgres://u:p@localhost:5432/whisperwall", Host: "ignored"}

		// Act + Assert
		require.Equal(t, "postgres://u:p@localhost:5432/whisperwall", buildCxnStr(cfg))
	})

	t.Run("Discrete-Values", func(t *testing.T) {
		// Arrange
		cfg := &CxnConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "whisperwall",
			User:     "u",
			Password: "p",
			SSLMode:  "disable",
		}

		// Act + Assert
		require.Equal(t, "host=localhost port=5432 dbname=whisperwall user=u password=p sslmode=disable", buildCxnStr(cfg))
	})

	t.Run("Default-SSLMode", func(t *testing.T) {
		// Arrange
		cfg := &CxnConfig{Host: "localhost", Port: "5432", Name: "whisperwall", User: "u", Password: "p"}

		// Act + Assert
		require.Contains(t, buildCxnStr(cfg), "sslmode=prefer")
	})
}

func TestMigrationsOrdered(t *testing.T) {
	// Arrange
	ms := Migrations()

	// Assert
	require.NotEmpty(t, ms)
	for _, m := range ms {
		require.NotEmpty(t, m.Key)
		require.NotNil(t, m.Executor)
	}
}
