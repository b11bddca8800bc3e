package standard

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")

	logger.Info("Feed fetched", map[string]interface{}{
		"url":   "http://example.com/rss",
		"bytes": 42,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Feed fetched", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "http://example.com/rss", entry["url"])
	assert.Equal(t, float64(42), entry["bytes"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", "text")

	logger.Debug("hidden debug", nil)
	logger.Info("hidden info", nil)
	logger.Warn("visible warn", nil)
	logger.Error("visible error", map[string]interface{}{"code": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warn")
	assert.Contains(t, out, "visible error")
	assert.Contains(t, out, "code=1")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel(" ERROR "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestNewStandardLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rssreader.log")
	logger := NewStandardLogger(Config{Level: "debug", Format: "text", File: path})

	logger.Debug("written to file", nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}

func TestNewStandardLogger_CloseWithoutFile(t *testing.T) {
	logger := NewStandardLogger(Config{})
	assert.NoError(t, logger.Close())
}
