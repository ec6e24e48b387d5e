package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		env        string
		debugLevel bool
	}{
		{env: "development", debugLevel: true},
		{env: "production", debugLevel: false},
		{env: "", debugLevel: false},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			l, err := New(tc.env)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tc.debugLevel, l.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
