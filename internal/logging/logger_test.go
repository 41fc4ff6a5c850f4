package logging

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
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf, Network: "testnet"})

	logger.Debug("hidden")
	logger.Info("payment submitted", "hash", "ABCD")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "payment submitted", record["msg"])
	assert.Equal(t, "ABCD", record["hash"])
	assert.Equal(t, "xrplpay", record["service"])
	assert.Equal(t, "testnet", record["network"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Format: "text", Output: &buf}).Debug("payment state", "state", "building")

	assert.Contains(t, buf.String(), "state=building")
	assert.NotContains(t, buf.String(), "network=")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
