package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)
	log.Debug("hidden")
	log.Info("catalog fetch", "category", "eyeglasses")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "catalog fetch", record["msg"])
	assert.Equal(t, "eyeglasses", record["category"])
}

func TestDevelopmentLogsDebugText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("development", &buf).Debug("visible", "seq", 3)
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "seq=3")
}
