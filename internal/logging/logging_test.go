package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewHonorsVerbose(t *testing.T) {
	logger, err := New("error", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = New("error", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestConsoleConfig(t *testing.T) {
	config := zap.NewProductionConfig()
	ConsoleConfig(zapcore.InfoLevel)(&config)

	assert.Equal(t, "console", config.Encoding)
	assert.Equal(t, zapcore.InfoLevel, config.Level.Level())
	assert.True(t, config.DisableStacktrace)
	assert.Equal(t, []string{"stderr"}, config.OutputPaths)
}
