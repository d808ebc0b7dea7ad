package flux

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Freezes(t *testing.T) {
	source := map[string]any{
		"user":  map[string]any{"name": "Alice"},
		"items": []any{"a", map[string]any{"id": 1}},
	}

	s := NewState(source)
	source["user"].(map[string]any)["name"] = "Mallory"
	source["extra"] = true

	assert.False(t, s.Has("extra"))
	user, ok := s.Get("user").(State)
	require.True(t, ok)
	assert.Equal(t, "Alice", user.Get("name"))

	items, ok := s.Get("items").([]any)
	require.True(t, ok)
	_, ok = items[1].(State)
	assert.True(t, ok, "maps inside slices are frozen too")

	items[0] = "changed"
	assert.Equal(t, []any{"a", NewState(map[string]any{"id": 1})}, s.Get("items"))
}

func TestState_WithWithout(t *testing.T) {
	base := NewState(map[string]any{"a": 1})

	added := base.With("b", map[string]any{"c": 2})
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, added.Len())
	_, ok := added.Get("b").(State)
	assert.True(t, ok)

	removed := added.Without("a")
	assert.Equal(t, []string{"b"}, removed.Keys())
	assert.True(t, added.Has("a"))

	assert.Equal(t, added, added.Without("missing"))
}

func TestState_Lookup(t *testing.T) {
	s := NewState(map[string]any{"present": nil})

	v, ok := s.Lookup("present")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = s.Lookup("absent")
	assert.False(t, ok)

	var zero State
	assert.Nil(t, zero.Get("anything"))
	assert.Empty(t, zero.Keys())
}

func TestState_MapIsDeepCopy(t *testing.T) {
	s := NewState(map[string]any{"nested": map[string]any{"n": 1}})

	m := s.Map()
	m["nested"].(map[string]any)["n"] = 2

	assert.Equal(t, 1, s.Get("nested").(State).Get("n"))
}

func TestState_Equal(t *testing.T) {
	a := NewState(map[string]any{"x": map[string]any{"y": 1}})
	b := NewState(map[string]any{"x": map[string]any{"y": 1}})
	c := a.With("z", 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, State{}.Equal(NewState(nil)))
}

func TestState_JSON(t *testing.T) {
	s := NewState(map[string]any{
		"title": "todo",
		"tags":  []any{"x"},
		"meta":  map[string]any{"done": false},
	})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"todo","tags":["x"],"meta":{"done":false}}`, string(data))

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, s.Equal(decoded))
	_, ok := decoded.Get("meta").(State)
	assert.True(t, ok)
}
