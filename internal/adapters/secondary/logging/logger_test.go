package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       entities.LoggingConfig
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"default is info", entities.LoggingConfig{}, false, true, true},
		{"debug", entities.LoggingConfig{Level: "debug"}, true, true, true},
		{"warn", entities.LoggingConfig{Level: "warn"}, false, false, true},
		{"error", entities.LoggingConfig{Level: "error"}, false, false, false},
		{"verbose forces debug", entities.LoggingConfig{Level: "error", Verbose: true}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(tt.cfg, &buf)

			logger.Debug("debug %d", 1)
			logger.Info("info %d", 2)
			logger.Warn("warn %d", 3)
			logger.Error("error %d", 4)

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug 1"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info 2"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn 3"))
			assert.Contains(t, out, "error 4")
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(entities.LoggingConfig{JSONFormat: true}, &buf)

	logger.Component("assembler").WithField("slides", 3).Info("assembled %q", "Remote Work")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, `assembled "Remote Work"`, entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "assembler", entry["component"])
	assert.Equal(t, float64(3), entry["slides"])
}

func TestLogger_WithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(entities.LoggingConfig{JSONFormat: true}, &buf)

	_ = logger.WithField("request_id", "abc")
	logger.Info("plain")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry["request_id"]
	assert.False(t, ok)
}

func TestLogger_Instances(t *testing.T) {
	var a, b bytes.Buffer
	first := NewWithWriter(entities.LoggingConfig{Level: "debug"}, &a)
	second := NewWithWriter(entities.LoggingConfig{Level: "error"}, &b)

	first.Debug("first")
	second.Debug("second")

	assert.Contains(t, a.String(), "first")
	assert.Empty(t, b.String())
}

func TestNew_File(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "deckgenie-test-*")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, "deckgenie.log")
	logger, err := New(entities.LoggingConfig{File: path})
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	t.Run("unwritable path", func(t *testing.T) {
		_, err := New(entities.LoggingConfig{File: filepath.Join(tmpDir, "missing", "x.log")})
		assert.Error(t, err)
	})

	t.Run("close without file", func(t *testing.T) {
		logger, err := New(entities.LoggingConfig{})
		require.NoError(t, err)
		assert.NoError(t, logger.Close())
	})
}
