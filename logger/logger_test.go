package logger_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whisperwall/whisperwall/logger"
)

func TestAppLoggerLevels(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(
		logger.WithLogger(log.New(b, "", 0)),
		logger.WithLevel(logger.LogLevelWarn),
	)

	// Act
	l.Debug("quiet", nil)
	l.Info("quiet", nil)
	l.Warn("loud", nil)
	l.Error("louder", nil)

	// Assert
	require.NotContains(t, b.String(), "quiet")
	require.Contains(t, b.String(), "loud")
	require.Contains(t, b.String(), "louder")
	require.Equal(t, logger.LogLevelWarn, l.LogLevel())
}

func TestAppLoggerLogContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)))

	// Act
	l.Error("oops", &logger.LogContext{
		Error: errors.New("the database is on fire"),
		Data:  map[string]any{"attempt": 3},
	})

	// Assert
	require.Contains(t, b.String(), "oops")
	require.Contains(t, b.String(), "the database is on fire")
	require.Contains(t, b.String(), "attempt")
}

func TestNewLogLevel(t *testing.T) {
	// Arrange + Act + Assert
	require.Equal(t, logger.LogLevelDebug, logger.NewLogLevel("DEBUG"))
	require.Equal(t, logger.LogLevelError, logger.NewLogLevel("ERROR"))
	require.Equal(t, logger.LogLevelUnk, logger.NewLogLevel("nope"))
}
