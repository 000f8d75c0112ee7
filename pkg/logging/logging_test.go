package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup_ProductionIsQuiet(t *testing.T) {
	logger, err := Setup(false, "codefuse", "test")
	require.NoError(t, err)

	assert.Same(t, logger, zap.L())
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestSetup_Debug(t *testing.T) {
	logger, err := Setup(true, "codefuse", "test")
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
