package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test", Options{Level: "debug"})
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("engine", Options{Level: "debug", Format: "json", Output: &buf})
	l.Debugw("assessment computed", map[string]any{"risk_score": 42})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(42), entry["risk_score"])
	assert.Equal(t, "assessment computed", entry["message"])
}

func TestZerologLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("x", Options{Level: "warn", Format: "json", Output: &buf})
	l.Infof("hidden")
	l.Warnf("shown")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}

func TestConfigureAffectsNew(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "error", Format: "json", Output: &buf})
	defer Configure(Options{})
	l := New("svc")
	l.Warnf("dropped")
	l.Errorf("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
