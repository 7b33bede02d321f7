package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "riffle.log")

	log, closer, err := New(Config{Level: "info", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("song started", zap.String("id", "42"))
	require.NoError(t, log.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug records are filtered at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "song started", rec["msg"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "42", rec["id"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	log, _, err := New(Config{Level: "debug", Console: &buf})
	require.NoError(t, err)

	log.Debug("catalog search", zap.String("term", "daft punk"))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "catalog search")
}

func TestNew_NoOutputsIsNop(t *testing.T) {
	log, closer, err := New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.NoError(t, closer.Close())
	log.Info("dropped")
}

func TestGlobal(t *testing.T) {
	assert.NotNil(t, L())

	var buf bytes.Buffer
	log, _, err := New(Config{Console: &buf})
	require.NoError(t, err)

	Set(log)
	t.Cleanup(func() { Set(zap.NewNop()) })

	L().Info("hello")
	assert.Contains(t, buf.String(), "hello")
}
