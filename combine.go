package flux

import (
	"maps"
	"slices"
)

// Combine builds one reducer over a [State] whose keys are the keys of
// reducers. On every call each slice reducer receives the previous value at
// its key (nil on the first run) and the action, and the results form a new
// State. Keys are visited in sorted order; nil reducers are dropped.
//
// A slice reducer returning nil fails the whole call with an
// [*UndefinedStateError]; a slice reducer error is returned unchanged. In
// both cases no partial state is produced.
func Combine(reducers map[string]Reducer[any]) Reducer[State] {
	slicesByKey := maps.Clone(reducers)
	maps.DeleteFunc(slicesByKey, func(_ string, r Reducer[any]) bool { return r == nil })
	keys := slices.Sorted(maps.Keys(slicesByKey))

	return func(state State, action Action) (State, error) {
		next := make(map[string]any, len(keys))
		for _, key := range keys {
			value, err := slicesByKey[key](state.Get(key), action)
			if err != nil {
				return State{}, err
			}
			if value == nil {
				return State{}, &UndefinedStateError{Key: key, ActionType: action.Type()}
			}
			next[key] = value
		}
		return NewState(next), nil
	}
}
