package middleware

import "github.com/spetersoncode/flux"

// FuncType is the action type reported by [Func] values.
const FuncType = "@@flux/FUNC"

// Func is a deferred action. When dispatched through [Thunk] it is called
// with the store's dispatch, a state accessor and the extra argument given to
// Thunk, and its return value becomes the result of dispatch.
type Func[S any] func(dispatch flux.Dispatch, getState func() (S, error), extra any) (any, error)

// Type returns FuncType. Reducers treat it like any unknown action.
func (Func[S]) Type() string { return FuncType }

// Thunk returns middleware that runs [Func] actions. Other actions continue
// down the chain. Dispatches issued by a Func go through the whole chain, so
// a Func may dispatch further Funcs.
func Thunk[S any](extra any) flux.Middleware[S] {
	return func(api flux.MiddlewareAPI[S]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (any, error) {
				fn, ok := a.(Func[S])
				if !ok {
					return next(a)
				}
				if fn == nil {
					return nil, flux.ErrInvalidAction
				}
				return fn(api.Dispatch, api.GetState, extra)
			}
		}
	}
}
