// Package persist saves and restores the state of a flux store.
//
// An [Adapter] is a persistence backend for one composite [flux.State].
// Two adapters are provided:
//   - [MemoryAdapter]: in-process, useful for tests
//   - [FileAdapter]: a single YAML document on disk
//
// [Enhancer] wires an adapter into store construction: the saved state is
// used as the preloaded state and the state is saved after every dispatch.
//
//	store, err := flux.New(reducer,
//	    flux.WithEnhancer(flux.ComposeEnhancers(
//	        persist.Enhancer(ctx, persist.NewFileAdapter("state.yaml")),
//	        flux.ApplyMiddleware(middleware.Logging[flux.State](logger)),
//	    )),
//	)
//
// Persisted values must be plain data: strings, numbers, booleans, lists and
// string-keyed maps. Restored maps become nested [flux.State] values and
// lists become []any, the same shapes [flux.Combine] produces.
package persist
