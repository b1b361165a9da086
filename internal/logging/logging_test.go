package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{" WARN ", WarnLevel, true},
		{"warning", WarnLevel, true},
		{"off", Disabled, true},
		{"", InfoLevel, false},
		{"loud", InfoLevel, false},
	}
	for _, tc := range tests {
		got, ok := ParseLevel(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}

func TestInit_WritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	t.Cleanup(func() { Init(Config{Level: Disabled, Output: &bytes.Buffer{}}) })

	log := Component("session")
	log.Debug().Str("method", "init").Msg("call issued")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "session", line["component"])
	assert.Equal(t, "init", line["method"])
	assert.Equal(t, "debug", line["level"])
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogPretty, "true")
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	assert.Equal(t, ErrorLevel, cfg.Level)
	assert.True(t, cfg.Pretty)
}
