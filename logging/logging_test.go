package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"linkrelay/config"
)

func TestNewParsesLevel(t *testing.T) {
	logger := New(config.LogSettings{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger := New(config.LogSettings{Level: "chatty", JSON: true})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestOutputDefaultsToStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, Output(config.LogSettings{}))
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	settings := config.LogSettings{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	out, ok := Output(settings).(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, path, out.Filename)

	logger := New(settings)
	logger.Info("relay started")
	if closer, ok := logger.Out.(*lumberjack.Logger); ok {
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "relay started")
}
