package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bridge.log")
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", OutputPath: out}, zap.Uint64("chain_id", 7))
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"hello"`)
	assert.Contains(t, line, `"chain_id":7`)
}

func TestNewLogger_Errors(t *testing.T) {
	_, err := NewLogger(LoggingConfig{Level: "loud", Format: "json"})
	require.Error(t, err)

	_, err = NewLogger(LoggingConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
}
