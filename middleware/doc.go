// Package middleware provides built-in dispatch middleware for flux stores.
//
// Every constructor returns a [flux.Middleware] for a given state type and is
// installed with [flux.ApplyMiddleware]. The first middleware listed is the
// outermost wrapper:
//
//	// recover → logging → thunk → store
//	s, err := flux.New(reducer, flux.WithEnhancer(flux.ApplyMiddleware(
//	    middleware.Recover[flux.State](logger),
//	    middleware.Logging[flux.State](logger),
//	    middleware.Thunk[flux.State](nil),
//	)))
//
// # Built-in Middleware
//
//   - [Logging] logs action type, dispatch ID, duration and outcome
//   - [Thunk] runs [Func] actions instead of handing them to the reducer
//   - [Recover] turns panics further down the chain into errors
//   - [Metrics] records dispatch counts and latency in Prometheus
//   - [Tracing] wraps each dispatch in an OpenTelemetry span
//
// # Writing Custom Middleware
//
//	func Filter[S any](drop string) flux.Middleware[S] {
//	    return func(api flux.MiddlewareAPI[S]) flux.Link {
//	        return func(next flux.Dispatch) flux.Dispatch {
//	            return func(a flux.Action) (any, error) {
//	                if a.Type() == drop {
//	                    return nil, nil
//	                }
//	                return next(a)
//	            }
//	        }
//	    }
//	}
//
// A middleware that does not call next short-circuits the dispatch: the
// reducer does not run and listeners are not notified.
package middleware
