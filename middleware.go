package flux

// MiddlewareAPI is the restricted store view middleware is built against.
type MiddlewareAPI[S any] interface {
	GetState() (S, error)
	Dispatch(action Action) (any, error)
}

// Link wraps the next dispatch function in the chain.
type Link = func(next Dispatch) Dispatch

// Middleware intercepts dispatches. It is called once with the store view
// while the chain is assembled and returns the link that wraps next. A link
// may inspect or replace the action, call next zero or more times, and
// transform the result.
//
// Dispatching through api while the middleware is being set up fails with
// [ErrPrematureDispatch]. Once the store is built, api.Dispatch runs the
// whole chain, starting with the first middleware.
type Middleware[S any] func(api MiddlewareAPI[S]) Link

// ApplyMiddleware returns an enhancer that routes every dispatch through
// middlewares. The first middleware listed intercepts first and returns
// last.
func ApplyMiddleware[S any](middlewares ...Middleware[S]) Enhancer[S] {
	return func(next Constructor[S]) Constructor[S] {
		return func(reducer Reducer[S], opts ...Option[S]) (Store[S], error) {
			base, err := next(reducer, opts...)
			if err != nil {
				return nil, err
			}

			api := &middlewareAPI[S]{
				getState: base.GetState,
				dispatch: func(Action) (any, error) {
					return nil, ErrPrematureDispatch
				},
			}

			links := make([]Link, 0, len(middlewares))
			for _, mw := range middlewares {
				if mw == nil {
					continue
				}
				links = append(links, mw(api))
			}

			dispatch := Compose(links...)(base.Dispatch)
			api.dispatch = dispatch

			return &enhancedStore[S]{Store: base, dispatch: dispatch}, nil
		}
	}
}

type middlewareAPI[S any] struct {
	getState func() (S, error)
	dispatch Dispatch
}

func (m *middlewareAPI[S]) GetState() (S, error) {
	return m.getState()
}

func (m *middlewareAPI[S]) Dispatch(action Action) (any, error) {
	if !valid(action) {
		return nil, ErrInvalidAction
	}
	return m.dispatch(action)
}

// enhancedStore replaces Dispatch and passes everything else to the base store.
type enhancedStore[S any] struct {
	Store[S]
	dispatch Dispatch
}

// Dispatch rejects invalid actions before any middleware sees them.
func (e *enhancedStore[S]) Dispatch(action Action) (any, error) {
	if !valid(action) {
		return nil, ErrInvalidAction
	}
	return e.dispatch(action)
}
