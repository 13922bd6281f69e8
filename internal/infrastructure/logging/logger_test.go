package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fboard/internal/infrastructure/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fboard.log")
	logger, err := New(config.LoggingConfig{Level: "debug", File: path, MaxSizeMB: 1}, true)
	require.NoError(t, err)

	logger.WithField("card", "Task").Warn("skipped")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "skipped")
	assert.Contains(t, string(data), "card=Task")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, true)
	assert.Error(t, err)
}

func TestStderrHook_OnlyWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := Discard()
	logger.AddHook(&stderrHook{writer: &buf, formatter: &logrus.TextFormatter{DisableTimestamp: true}})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NoError(t, logger.Close())
}
