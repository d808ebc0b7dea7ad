package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/flux"
)

var counterState = flux.Combine(map[string]flux.Reducer[any]{
	"count": flux.AsAny(flux.Pure(func(n int, a flux.Action) int {
		if a.Type() == "INCREMENT" {
			return n + 1
		}
		return n
	})),
})

type failingAdapter struct {
	MemoryAdapter
	err error
}

func (f *failingAdapter) Save(context.Context, map[string]any) error { return f.err }

func TestRestore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()

	_, ok, err := Restore(ctx, m)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = MustRestore(ctx, m)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, map[string]any{"count": 4, "meta": map[string]any{"v": 1}}))
	state, ok, err := Restore(ctx, m)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, state.Get("count"))
	_, nested := state.Get("meta").(flux.State)
	assert.True(t, nested, "restored maps are frozen")
}

func TestEnhancer_SavesAndRestores(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()

	first, err := flux.New(counterState, flux.WithEnhancer(Enhancer(ctx, m)))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Saves(), "construction does not save")

	_, err = first.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err)
	_, err = first.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Saves())

	second, err := flux.New(counterState,
		flux.WithPreloadedState(flux.NewState(map[string]any{"count": 100})),
		flux.WithEnhancer(Enhancer(ctx, m)),
	)
	require.NoError(t, err)

	state, err := second.GetState()
	require.NoError(t, err)
	assert.Equal(t, 2, state.Get("count"), "saved state wins over the preloaded state")
}

func TestEnhancer_WithMiddleware(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()

	var seen []string
	logger := func(api flux.MiddlewareAPI[flux.State]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (any, error) {
				seen = append(seen, a.Type())
				return next(a)
			}
		}
	}

	s, err := flux.New(counterState, flux.WithEnhancer(flux.ComposeEnhancers(
		Enhancer(ctx, m),
		flux.ApplyMiddleware(logger),
	)))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err)

	assert.Equal(t, []string{"INCREMENT"}, seen)
	data, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"count": 1}, data)
}

func TestEnhancer_RestoreFailure(t *testing.T) {
	path := t.TempDir() + "/bad.yaml"
	f := NewFileAdapter(path)
	require.NoError(t, writeRaw(path, "::: not yaml"))

	_, err := flux.New(counterState, flux.WithEnhancer(Enhancer(context.Background(), f)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist: restore")
}

func TestSaver_ReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("disk full")
	adapter := &failingAdapter{err: boom}

	var reported []error
	s, err := flux.New(counterState, flux.WithEnhancer(Enhancer(context.Background(), adapter,
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err, "save failures do not fail the dispatch")

	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
	assert.Contains(t, buf.String(), "persist: save failed")
}
