package flux

// Dispatch is the signature of Store.Dispatch and of every link in a
// middleware chain.
type Dispatch func(action Action) (any, error)

// BoundCreator creates an action from its arguments and dispatches it.
type BoundCreator func(args ...any) (any, error)

// Bind wraps a single action creator so that calling it dispatches the
// action it builds and returns the result of dispatch.
func Bind(creator ActionCreator, dispatch Dispatch) BoundCreator {
	return func(args ...any) (any, error) {
		return dispatch(creator(args...))
	}
}

// BindMap wraps every creator in creators with [Bind]. Nil creators are
// skipped.
func BindMap(creators map[string]ActionCreator, dispatch Dispatch) map[string]BoundCreator {
	bound := make(map[string]BoundCreator, len(creators))
	for name, creator := range creators {
		if creator == nil {
			continue
		}
		bound[name] = Bind(creator, dispatch)
	}
	return bound
}
