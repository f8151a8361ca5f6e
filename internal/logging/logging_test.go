package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zap.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zap.WarnLevel, ParseLevel("Warn"))
	require.Equal(t, zap.ErrorLevel, ParseLevel(" error "))
	require.Equal(t, zap.InfoLevel, ParseLevel("nonsense"))
	require.Equal(t, zap.InfoLevel, ParseLevel(""))
}

func TestNewFile(t *testing.T) {
	logger, err := NewFile("debug", filepath.Join(t.TempDir(), "game.log"))
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))
	logger.Info("hello")
	_ = logger.Sync()
}
