package flux

import (
	"reflect"

	"github.com/spetersoncode/flux/internal/snapshot"
)

// Copier produces the value handed to readers of the store. It must return a
// value that shares no mutable memory with its input.
type Copier[S any] func(state S) (S, error)

// Options contains configuration for store construction.
type Options[S any] struct {
	// Preloaded is the state the init dispatch starts from.
	Preloaded S

	// HasPreloaded is set when Preloaded was supplied explicitly.
	HasPreloaded bool

	// Enhancer wraps store construction. Nil builds a plain store.
	Enhancer Enhancer[S]

	// Copier protects published state from mutation through GetState.
	Copier Copier[S]
}

// Option is a functional option for store construction.
type Option[S any] func(*Options[S])

// WithPreloadedState sets the initial state, e.g. one restored from storage.
// The store keeps a copy made with the configured Copier, so later changes
// to state by the caller do not reach the store.
func WithPreloadedState[S any](state S) Option[S] {
	return func(o *Options[S]) {
		o.Preloaded = state
		o.HasPreloaded = true
	}
}

// WithEnhancer sets the store enhancer, typically built by [ApplyMiddleware].
// Use [ComposeEnhancers] to install more than one.
func WithEnhancer[S any](e Enhancer[S]) Option[S] {
	return func(o *Options[S]) {
		o.Enhancer = e
	}
}

// WithCopier overrides how composite state is copied before it is returned
// from GetState. Pass a function returning its input to disable copying.
func WithCopier[S any](c Copier[S]) Option[S] {
	return func(o *Options[S]) {
		o.Copier = c
	}
}

// ApplyOptions applies functional options with defaults.
func ApplyOptions[S any](opts ...Option[S]) *Options[S] {
	o := &Options[S]{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Copier == nil {
		o.Copier = defaultCopier[S]
	}
	return o
}

var stateType = reflect.TypeOf(State{})

// defaultCopier deep-copies composite values. Unexported struct fields are
// not copied; such types should implement Immutable or bring their own Copier.
func defaultCopier[S any](state S) (S, error) {
	if _, ok := any(state).(Immutable); ok {
		return state, nil
	}
	return snapshot.Copy(state, stateType)
}
