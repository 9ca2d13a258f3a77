package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(Config{Level: slog.LevelInfo, Writer: &buf})

	log.Debug("hidden")
	log.Info("decoded document", "format", "json")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "decoded document")
	assert.Contains(t, out, "format=json")
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(Config{Level: slog.LevelDebug, JSON: true, Writer: &buf})

	log.Debug("extracted", "path", "a.b")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "a.b", record["path"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
