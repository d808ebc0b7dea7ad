// Package flux provides a minimal unidirectional state container.
//
// A [Store] holds a single state value. The only way to change it is to
// dispatch an [Action]; the store hands the current state and the action to a
// [Reducer], publishes the result, and then notifies every subscribed
// [Listener] synchronously.
//
// # Basic Usage
//
// Create a store from a reducer and dispatch actions:
//
//	counter := flux.Pure(func(n int, a flux.Action) int {
//	    switch a.Type() {
//	    case "INCREMENT":
//	        return n + 1
//	    case "DECREMENT":
//	        return n - 1
//	    }
//	    return n
//	})
//
//	s, err := flux.New(counter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	unsubscribe, _ := s.Subscribe(func() {
//	    n, _ := s.GetState()
//	    fmt.Println("count:", n)
//	})
//	defer unsubscribe()
//
//	s.Dispatch(flux.Plain{Kind: "INCREMENT"})
//
// # Composite State
//
// Use [Combine] to build one reducer over an immutable [State] from a map of
// slice reducers. Typed slice reducers are lifted with [AsAny]:
//
//	root := flux.Combine(map[string]flux.Reducer[any]{
//	    "counter": flux.AsAny(counter),
//	    "todos":   flux.AsAny(todos),
//	})
//	s, err := flux.New(root)
//
// # Middleware
//
// Middleware intercepts every dispatch. [ApplyMiddleware] turns a list of
// middleware into an [Enhancer] passed at construction time:
//
//	s, err := flux.New(root, flux.WithEnhancer(flux.ApplyMiddleware(
//	    middleware.Logging[flux.State](logger),
//	    middleware.Thunk[flux.State](nil),
//	)))
//
// The first middleware listed sees the action first and its return value is
// what the caller of Dispatch receives.
//
// # Reentrancy
//
// A reducer must not call GetState, Dispatch or Subscribe on its own store.
// Doing so fails with an error wrapping [ErrIllegalReentrancy]; the store
// stays usable afterwards.
//
// # Thread Safety
//
// A Store is NOT safe for concurrent use. It is meant to be owned by a single
// goroutine, typically a UI or event loop.
package flux
