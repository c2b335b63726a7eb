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

func TestSetup_JSONWithQueryID(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("debug", "json", &buf)

	ctx := WithQueryID(context.Background(), "q-42")
	FromContext(ctx).Debug("search completed", "returned", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "search completed", line["msg"])
	assert.Equal(t, "q-42", line["query_id"])
	assert.Equal(t, float64(3), line["returned"])
}

func TestSetup_LevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("warn", "text", &buf)
	WithComponent("indexer").Info("hidden")
	assert.Empty(t, buf.String())
	WithComponent("indexer").Warn("shown")
	assert.Contains(t, buf.String(), "component=indexer")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestQueryID_Missing(t *testing.T) {
	assert.Empty(t, QueryID(context.Background()))
}
