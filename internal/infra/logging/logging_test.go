//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"leads-relay-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_AttachesContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := newWithWriter(config.LogConfig{Level: "info", Format: "json"}, false, &buf)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithTgID(ctx, 42)
	ctx = WithUpdateID(ctx, 7)
	With(ctx, base).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "trace-1", line["trace_id"])
	assert.EqualValues(t, 42, line["tg_id"])
	assert.EqualValues(t, 7, line["update_id"])
	assert.Equal(t, "trace-1", TraceID(ctx))
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(config.LogConfig{Level: "warn", Format: "json"}, false, &buf)
	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "***", Redact("+7999", false))
	assert.Equal(t, "+799...00", Redact("+79990000000", false))
	assert.Equal(t, "+79990000000", Redact("+79990000000", true))
}
