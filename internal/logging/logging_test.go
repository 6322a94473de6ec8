package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantError bool
	}{
		{
			name: "info console",
			cfg:  &Config{Level: "info", Format: "console"},
		},
		{
			name: "debug json",
			cfg:  &Config{Level: "debug", Format: "json"},
		},
		{
			name: "nil config uses defaults",
			cfg:  nil,
		},
		{
			name:      "invalid level",
			cfg:       &Config{Level: "loud", Format: "console"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Info("hello", zap.String("k", "v"))
		})
	}
}

func TestChildLoggers(t *testing.T) {
	logger, err := New(&Config{Level: "error", Format: "console"})
	require.NoError(t, err)

	child := logger.Named("agent").With(zap.String("run_id", "r1"))
	require.NotNil(t, child)
	child.Debug("suppressed below error level")
	require.NoError(t, logger.Sync())
}

func TestNewEncoder(t *testing.T) {
	entry := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		Message: "search complete",
	}

	jsonBuf, err := newEncoder("json").EncodeEntry(entry, nil)
	require.NoError(t, err)
	assert.Contains(t, jsonBuf.String(), `"msg":"search complete"`)

	consoleBuf, err := newEncoder("console").EncodeEntry(entry, nil)
	require.NoError(t, err)
	assert.Contains(t, consoleBuf.String(), "search complete")
	assert.NotContains(t, consoleBuf.String(), `"msg"`)
}
