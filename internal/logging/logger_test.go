package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "contacts.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("hello", zap.String("op", "test"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"op":"test"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}
