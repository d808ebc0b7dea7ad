package flux

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
)

// Immutable is implemented by values that cannot be changed through any
// reference handed out by the store. Such values are published as-is; every
// other composite value is copied on read.
type Immutable interface {
	Immutable()
}

// State is a read-only string-keyed map. Nested map[string]any values are
// converted to State and []any values are copied when a State is built, so a
// State and everything reachable from it cannot be changed after creation.
// The zero value is an empty State.
type State struct {
	m map[string]any
}

// NewState builds a State from m. The map is not retained.
func NewState(m map[string]any) State {
	if len(m) == 0 {
		return State{}
	}
	frozen := make(map[string]any, len(m))
	for k, v := range m {
		frozen[k] = freeze(v)
	}
	return State{m: frozen}
}

func freeze(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return NewState(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = freeze(e)
		}
		return out
	}
	return v
}

func thaw(v any) any {
	switch t := v.(type) {
	case State:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = thaw(e)
		}
		return out
	}
	return v
}

// Immutable marks State as safe to publish without copying.
func (State) Immutable() {}

// Get returns the value stored at key, or nil.
func (s State) Get(key string) any {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value stored at key and whether it exists.
// Slice values are returned as copies.
func (s State) Lookup(key string) (any, bool) {
	v, ok := s.m[key]
	if !ok {
		return nil, false
	}
	if list, isList := v.([]any); isList {
		return slices.Clone(list), true
	}
	return v, true
}

// Has reports whether key exists.
func (s State) Has(key string) bool {
	_, ok := s.m[key]
	return ok
}

// Keys returns the keys in sorted order.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s.m))
}

// Len returns the number of keys.
func (s State) Len() int {
	return len(s.m)
}

// With returns a copy of s with key set to value.
func (s State) With(key string, value any) State {
	next := make(map[string]any, len(s.m)+1)
	maps.Copy(next, s.m)
	next[key] = freeze(value)
	return State{m: next}
}

// Without returns a copy of s with key removed.
func (s State) Without(key string) State {
	if !s.Has(key) {
		return s
	}
	next := maps.Clone(s.m)
	delete(next, key)
	return State{m: next}
}

// Map returns a deep, mutable copy of the state as plain Go maps and slices.
func (s State) Map() map[string]any {
	out := make(map[string]any, len(s.m))
	for k, v := range s.m {
		out[k] = thaw(v)
	}
	return out
}

// Equal reports whether s and other hold deeply equal values.
func (s State) Equal(other State) bool {
	return reflect.DeepEqual(s.Map(), other.Map())
}

// MarshalJSON encodes the state as a JSON object.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes a JSON object into the state.
func (s *State) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = NewState(m)
	return nil
}
