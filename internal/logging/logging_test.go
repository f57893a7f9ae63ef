package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, "warn", "json")

	log.Info("dropped")
	log.Warn("kept", "trip_id", "t1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "t1", entry["trip_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, "debug", "text")

	log.Debug("geocoding", "places", 7)

	out := buf.String()
	assert.Contains(t, out, "geocoding")
	assert.Contains(t, out, "places")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, "loud", "json")

	log.Debug("hidden")
	assert.Zero(t, buf.Len())
	log.Info("shown")
	assert.NotZero(t, buf.Len())
}
