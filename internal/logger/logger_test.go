package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	defer func() { Log = zap.NewNop() }()

	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			require.NoError(t, Initialize(level))
			require.NotNil(t, Log)

			lvl, err := zapcore.ParseLevel(level)
			require.NoError(t, err)
			require.True(t, Log.Core().Enabled(lvl))
		})
	}
}

func TestInitializeInvalidLevel(t *testing.T) {
	before := Log
	require.Error(t, Initialize("loud"))
	require.Same(t, before, Log)
}
