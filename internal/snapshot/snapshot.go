// Package snapshot deep-copies state values handed out by a store.
package snapshot

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Copy returns a deep copy of v. Scalars, strings and nil references are
// returned unchanged. Values whose type is listed in keep are shared rather
// than copied; use it for types that are immutable by construction.
func Copy[S any](v S, keep ...reflect.Type) (S, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !composite(rv) {
		return v, nil
	}

	cfg := copystructure.Config{Copiers: maps.Clone(copystructure.Copiers)}
	if cfg.Copiers == nil {
		cfg.Copiers = make(map[reflect.Type]copystructure.CopierFunc)
	}
	for _, t := range keep {
		cfg.Copiers[t] = share
	}

	out, err := cfg.Copy(v)
	if err != nil {
		var zero S
		return zero, fmt.Errorf("snapshot: copy %T: %w", v, err)
	}
	typed, ok := out.(S)
	if !ok {
		var zero S
		return zero, fmt.Errorf("snapshot: copy of %T produced %T", v, out)
	}
	return typed, nil
}

func share(v interface{}) (interface{}, error) {
	return v, nil
}

func composite(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Struct, reflect.Array:
		return true
	}
	return false
}
