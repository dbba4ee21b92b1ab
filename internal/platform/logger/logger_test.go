package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestJSONLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "petvax-hub", Output: &buf}).
		With(map[string]any{"component": "test"})

	log.Debug("hidden", nil)
	log.Info("pet created", map[string]any{"pet_id": "p-1", "": "dropped"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))

	assert.Equal(t, "pet created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "petvax-hub", entry["app"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "p-1", entry["pet_id"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "")
}
