package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevelToString(t *testing.T) {
	require.Equal(t, "TRACE", LogLevelToString(TraceLevel))
	require.Equal(t, "DEBUG", LogLevelToString(DebugLevel))
	require.Equal(t, "INFO", LogLevelToString(InfoLevel))
	require.Equal(t, "WARN", LogLevelToString(WarnLevel))
	require.Equal(t, "ERROR", LogLevelToString(ErrorLevel))
	require.Equal(t, "FATAL", LogLevelToString(FatalLevel))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WarnLevel, &buf)
	logger.Debugf("quiet %d", 1)
	logger.Infof("quiet %d", 2)
	require.Equal(t, 0, buf.Len())
	logger.Warnf("loud %d", 3)
	logger.Errorf("loud %d", 4)
	out := buf.String()
	require.Contains(t, out, "WARN loud 3")
	require.Contains(t, out, "ERROR loud 4")
	require.NotContains(t, out, "quiet")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Tracef("no-op")
	logger.Errorf("no-op")
}
