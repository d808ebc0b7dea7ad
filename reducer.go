package flux

import (
	"fmt"
	"reflect"
)

// Reducer computes the next state from the current state and an action.
// It must not have side effects and must not touch the store it belongs to.
// The returned value is stored as-is: a reducer must not keep or share a
// reference to mutable state it returns.
type Reducer[S any] func(state S, action Action) (S, error)

// Pure adapts a reducer that cannot fail.
func Pure[S any](fn func(state S, action Action) S) Reducer[S] {
	return func(state S, action Action) (S, error) {
		return fn(state, action), nil
	}
}

// AsAny lifts a typed reducer so it can be used as a slice of [Combine].
// A nil previous value is passed as the zero S, and a nil map, slice,
// pointer, func, chan or interface result is reported as nil so Combine's
// undefined-state check sees it.
func AsAny[S any](r Reducer[S]) Reducer[any] {
	return func(state any, action Action) (any, error) {
		var prev S
		if state != nil {
			typed, ok := state.(S)
			if !ok {
				return nil, &SliceTypeError{Want: fmt.Sprintf("%T", prev), Got: state}
			}
			prev = typed
		}
		next, err := r(prev, action)
		if err != nil {
			return nil, err
		}
		if isNil(next) {
			return nil, nil
		}
		return next, nil
	}
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
