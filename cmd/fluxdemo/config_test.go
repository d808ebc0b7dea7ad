package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FLUX_LOG_LEVEL", "")
	t.Setenv("FLUX_STATE_FILE", "")
	t.Setenv("FLUX_EMIT_EVENTS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "flux-state.yaml", cfg.StateFile)
	assert.False(t, cfg.EmitEvents)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("FLUX_LOG_LEVEL", "debug")
	t.Setenv("FLUX_STATE_FILE", "/tmp/todos.yaml")
	t.Setenv("FLUX_EMIT_EVENTS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/todos.yaml", cfg.StateFile)
	assert.True(t, cfg.EmitEvents)
}

func TestLoadConfig_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("FLUX_EMIT_EVENTS", "sometimes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.EmitEvents)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{LogLevel: "warn", StateFile: "s.yaml"}},
		{name: "upper case level", cfg: Config{LogLevel: "ERROR", StateFile: "s.yaml"}},
		{name: "unknown level", cfg: Config{LogLevel: "verbose", StateFile: "s.yaml"}, wantErr: "unknown log level"},
		{name: "empty state file", cfg: Config{LogLevel: "info"}, wantErr: "FLUX_STATE_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
