package flux

// Listener is called after every dispatch.
type Listener func()

// Unsubscribe removes exactly one listener registration. Calling it more than
// once has no further effect.
type Unsubscribe func()

// Store holds application state and applies dispatched actions to it.
type Store[S any] interface {
	// GetState returns the current state. Composite values that are not
	// Immutable are copied, so changes to the result never reach the store.
	GetState() (S, error)

	// Dispatch applies action through the reducer and notifies listeners.
	// A plain store returns the action itself; middleware may return
	// something else.
	Dispatch(action Action) (any, error)

	// Subscribe registers listener and returns the function that removes it.
	Subscribe(listener Listener) (Unsubscribe, error)

	// Observable exposes state changes as a push stream.
	Observable() *Observable[S]
}

// Constructor builds a store. It is the unit enhancers wrap.
type Constructor[S any] func(reducer Reducer[S], opts ...Option[S]) (Store[S], error)

// Enhancer wraps a Constructor to add behavior to the stores it builds.
type Enhancer[S any] func(next Constructor[S]) Constructor[S]

// New creates a store and dispatches the init action so the reducer can
// supply its default state. When an enhancer is configured, construction is
// delegated to it.
func New[S any](reducer Reducer[S], opts ...Option[S]) (Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	options := ApplyOptions(opts...)
	if options.Enhancer != nil {
		return options.Enhancer(newStore[S])(reducer, opts...)
	}
	return newStore(reducer, opts...)
}

// registration is one Subscribe call. Listeners are compared by
// registration, never by function value.
type registration struct {
	listener Listener
	active   bool
}

type store[S any] struct {
	state       S
	reducer     Reducer[S]
	copier      Copier[S]
	listeners   []*registration
	dispatching bool

	// reentered holds the first reentrant call made during the current
	// reduce. It fails the dispatch even if the reducer ignored the error.
	reentered error
}

// newStore is the base Constructor. It ignores any enhancer in opts.
func newStore[S any](reducer Reducer[S], opts ...Option[S]) (Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	options := ApplyOptions(opts...)
	s := &store[S]{
		reducer: reducer,
		copier:  options.Copier,
	}
	if options.HasPreloaded {
		preloaded, err := s.copier(options.Preloaded)
		if err != nil {
			return nil, err
		}
		s.state = preloaded
	}
	if _, err := s.Dispatch(initAction{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *store[S]) GetState() (S, error) {
	if s.dispatching {
		var zero S
		return zero, s.reentrant(OpGetState)
	}
	return s.copier(s.state)
}

func (s *store[S]) Dispatch(action Action) (any, error) {
	if !valid(action) {
		return nil, ErrInvalidAction
	}
	if s.dispatching {
		return nil, s.reentrant(OpDispatch)
	}
	if err := s.reduce(action); err != nil {
		return nil, err
	}
	s.notify()
	return action, nil
}

// reduce runs the reducer with the dispatching flag held. The flag is
// released on every exit path, including a panicking reducer.
func (s *store[S]) reduce(action Action) error {
	s.dispatching = true
	defer func() {
		s.dispatching = false
		s.reentered = nil
	}()

	next, err := s.reducer(s.state, action)
	if s.reentered != nil {
		return s.reentered
	}
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// reentrant records a call made while the reducer is running and returns
// the error for it.
func (s *store[S]) reentrant(op Op) error {
	err := &ReentrancyError{Op: op}
	if s.reentered == nil {
		s.reentered = err
	}
	return err
}

func (s *store[S]) notify() {
	regs := make([]*registration, len(s.listeners))
	copy(regs, s.listeners)
	for _, r := range regs {
		if r.active {
			r.listener()
		}
	}
}

func (s *store[S]) Subscribe(listener Listener) (Unsubscribe, error) {
	if s.dispatching {
		return nil, s.reentrant(OpSubscribe)
	}
	if listener == nil {
		return func() {}, nil
	}
	r := &registration{listener: listener, active: true}
	s.listeners = append(s.listeners, r)

	return func() {
		if !r.active {
			return
		}
		r.active = false
		for i, other := range s.listeners {
			if other == r {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}, nil
}

func (s *store[S]) Observable() *Observable[S] {
	return newObservable[S](s)
}

// listenerCount is used by tests.
func (s *store[S]) listenerCount() int {
	return len(s.listeners)
}
