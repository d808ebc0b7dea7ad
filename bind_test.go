package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adder = Pure(func(n int, a Action) int {
	if a.Type() == "ADD" {
		return n + a.(Plain).Payload.(int)
	}
	return n
})

func add(args ...any) Action {
	return Plain{Kind: "ADD", Payload: args[0]}
}

func TestBind(t *testing.T) {
	s, err := New(adder)
	require.NoError(t, err)

	bound := Bind(add, s.Dispatch)

	result, err := bound(5)
	require.NoError(t, err)
	assert.Equal(t, Plain{Kind: "ADD", Payload: 5}, result)

	_, err = bound(2)
	require.NoError(t, err)

	n, err := s.GetState()
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestBind_ForwardsAllArguments(t *testing.T) {
	var got []any
	creator := func(args ...any) Action {
		got = args
		return Plain{Kind: "NOOP"}
	}
	dispatch := func(a Action) (any, error) { return "dispatched", nil }

	result, err := Bind(creator, dispatch)(1, "two", 3.0)
	require.NoError(t, err)
	assert.Equal(t, "dispatched", result)
	assert.Equal(t, []any{1, "two", 3.0}, got)
}

func TestBindMap(t *testing.T) {
	s, err := New(adder)
	require.NoError(t, err)

	bound := BindMap(map[string]ActionCreator{
		"add": add,
		"addTen": func(args ...any) Action {
			return Plain{Kind: "ADD", Payload: 10}
		},
		"missing": nil,
	}, s.Dispatch)

	require.Len(t, bound, 2)
	assert.NotContains(t, bound, "missing")

	_, err = bound["add"](1)
	require.NoError(t, err)
	_, err = bound["addTen"]()
	require.NoError(t, err)

	n, err := s.GetState()
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

func TestBind_ThroughMiddleware(t *testing.T) {
	var log []string
	s, err := New(adder, WithEnhancer(ApplyMiddleware(recordingMiddleware("mw", &log))))
	require.NoError(t, err)

	result, err := Bind(add, s.Dispatch)(3)
	require.NoError(t, err)
	assert.Equal(t, "mw({ADD 3})", result)
	assert.Equal(t, []string{"mw:before", "mw:after"}, log)
}
