package agui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/spetersoncode/flux"
)

// JSON Patch operation names used in STATE_DELTA events.
const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
)

// Diff returns the JSON Patch operations that turn prev into next, one per
// changed top-level key, in key order. Values are compared by structural
// hash, so a slice reducer that returns an equal but freshly built value
// produces no operation.
func Diff(prev, next flux.State) ([]events.JSONPatchOperation, error) {
	before := prev.Map()
	after := next.Map()

	keys := append(prev.Keys(), next.Keys()...)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	var ops []events.JSONPatchOperation
	for _, key := range keys {
		oldValue, hadOld := before[key]
		newValue, hasNew := after[key]
		path := Pointer(key)

		switch {
		case !hadOld:
			ops = append(ops, events.JSONPatchOperation{Op: OpAdd, Path: path, Value: newValue})
		case !hasNew:
			ops = append(ops, events.JSONPatchOperation{Op: OpRemove, Path: path})
		default:
			changed, err := differs(oldValue, newValue)
			if err != nil {
				return nil, fmt.Errorf("agui: diff key %q: %w", key, err)
			}
			if changed {
				ops = append(ops, events.JSONPatchOperation{Op: OpReplace, Path: path, Value: newValue})
			}
		}
	}
	return ops, nil
}

func differs(a, b any) (bool, error) {
	ha, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	if err != nil {
		return false, err
	}
	hb, err := hashstructure.Hash(b, hashstructure.FormatV2, nil)
	if err != nil {
		return false, err
	}
	return ha != hb, nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer returns the JSON Pointer (RFC 6901) addressing a top-level key.
func Pointer(key string) string {
	return "/" + pointerEscaper.Replace(key)
}
