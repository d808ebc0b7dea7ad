package flux

// Observer receives each state published by a store.
type Observer[S any] interface {
	Next(state S)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[S any] func(state S)

// Next calls f(state).
func (f ObserverFunc[S]) Next(state S) { f(state) }

// Observable is a minimal push stream over a store's state changes.
type Observable[S any] struct {
	store Store[S]
}

func newObservable[S any](s Store[S]) *Observable[S] {
	return &Observable[S]{store: s}
}

// Subscribe calls observer.Next with the current state after every dispatch.
// The returned function delegates to the store's own unsubscribe.
func (o *Observable[S]) Subscribe(observer Observer[S]) (Unsubscribe, error) {
	if observer == nil {
		return func() {}, nil
	}
	return o.store.Subscribe(func() {
		state, err := o.store.GetState()
		if err != nil {
			return
		}
		observer.Next(state)
	})
}
