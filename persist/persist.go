package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spetersoncode/flux"
)

// Options configures Saver and Enhancer.
type Options struct {
	// Logger receives save failures. Defaults to slog.Default().
	Logger *slog.Logger

	// OnError is called with every save failure after it is logged.
	OnError func(error)
}

// Option is a functional option for persistence.
type Option func(*Options)

// WithLogger sets the logger for save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithErrorHandler sets a callback for save failures.
func WithErrorHandler(fn func(error)) Option {
	return func(o *Options) {
		o.OnError = fn
	}
}

// ApplyOptions applies functional options with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Restore loads the saved state from adapter. The boolean reports whether
// anything was saved.
func Restore(ctx context.Context, adapter Adapter) (flux.State, bool, error) {
	data, ok, err := adapter.Load(ctx)
	if err != nil {
		return flux.State{}, false, fmt.Errorf("persist: restore: %w", err)
	}
	if !ok {
		return flux.State{}, false, nil
	}
	return flux.NewState(data), true, nil
}

// MustRestore is like Restore but returns ErrNotFound when nothing was saved.
func MustRestore(ctx context.Context, adapter Adapter) (flux.State, error) {
	state, ok, err := Restore(ctx, adapter)
	if err != nil {
		return flux.State{}, err
	}
	if !ok {
		return flux.State{}, ErrNotFound
	}
	return state, nil
}

// Saver returns a listener that saves the store's state through adapter.
// Listeners cannot return errors, so failures are logged and passed to the
// configured error handler.
func Saver(ctx context.Context, store flux.Store[flux.State], adapter Adapter, opts ...Option) flux.Listener {
	options := ApplyOptions(opts...)
	return func() {
		err := save(ctx, store, adapter)
		if err == nil {
			return
		}
		options.Logger.Error("persist: save failed", slog.String("error", err.Error()))
		if options.OnError != nil {
			options.OnError(err)
		}
	}
}

func save(ctx context.Context, store flux.Store[flux.State], adapter Adapter) error {
	state, err := store.GetState()
	if err != nil {
		return err
	}
	return adapter.Save(ctx, state.Map())
}

// Enhancer returns a store enhancer that preloads the state saved in adapter
// and saves the state after every dispatch. A preloaded state passed to
// flux.New directly is overridden by saved state.
func Enhancer(ctx context.Context, adapter Adapter, opts ...Option) flux.Enhancer[flux.State] {
	return func(next flux.Constructor[flux.State]) flux.Constructor[flux.State] {
		return func(reducer flux.Reducer[flux.State], storeOpts ...flux.Option[flux.State]) (flux.Store[flux.State], error) {
			saved, ok, err := Restore(ctx, adapter)
			if err != nil {
				return nil, err
			}
			if ok {
				storeOpts = append(storeOpts[:len(storeOpts):len(storeOpts)], flux.WithPreloadedState(saved))
			}

			store, err := next(reducer, storeOpts...)
			if err != nil {
				return nil, err
			}
			if _, err := store.Subscribe(Saver(ctx, store, adapter, opts...)); err != nil {
				return nil, err
			}
			return store, nil
		}
	}
}
