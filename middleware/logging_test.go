package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/flux"
)

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLogging_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := newStore(Logging[int](logger))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err)

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "dispatch started", lines[0]["msg"])
	assert.Equal(t, "dispatch completed", lines[1]["msg"])
	assert.Equal(t, "INCREMENT", lines[1]["action"])
	assert.NotEmpty(t, lines[1]["dispatch_id"])
	assert.Equal(t, lines[0]["dispatch_id"], lines[1]["dispatch_id"])
}

func TestLogging_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	boom := errors.New("boom")
	s, err := flux.New(func(n int, a flux.Action) (int, error) {
		if a.Type() == "FAIL" {
			return n, boom
		}
		return n, nil
	}, flux.WithEnhancer(flux.ApplyMiddleware(Logging[int](logger))))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "FAIL"})
	assert.ErrorIs(t, err, boom)

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 1, "debug line is filtered at info level")
	assert.Equal(t, "dispatch failed", lines[0]["msg"])
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "boom", lines[0]["error"])
}

func TestBuiltins_NilAction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sr, tracer := setupTestTracer()

	s, err := newStore(
		Recover[int](logger),
		Logging[int](logger),
		Metrics[int](NewRecorder(nil)),
		TracingWithTracer[int](tracer),
		Thunk[int](nil),
	)
	require.NoError(t, err)

	_, err = s.Dispatch(nil)
	assert.ErrorIs(t, err, flux.ErrInvalidAction)
	assert.Empty(t, buf.String())
	assert.Empty(t, sr.Ended())
}
