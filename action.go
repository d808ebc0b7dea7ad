package flux

import "github.com/google/uuid"

// Action describes an intended state transition. Type is the discriminant
// reducers switch on.
type Action interface {
	Type() string
}

// Plain is a general purpose action carrying an optional payload.
type Plain struct {
	Kind    string
	Payload any
}

// Type returns the action kind.
func (p Plain) Type() string { return p.Kind }

// InitType is the tag of the action dispatched once when a store is built.
// It carries a random suffix so application reducers cannot match it and
// must fall through to their default branch.
var InitType = "@@flux/INIT/" + uuid.NewString()

type initAction struct{}

func (initAction) Type() string { return InitType }

// IsInit reports whether a is the construction-time init action.
func IsInit(a Action) bool {
	return a != nil && a.Type() == InitType
}

// valid reports whether a can be dispatched.
func valid(a Action) bool {
	return a != nil && a.Type() != ""
}

// ActionCreator builds an action from arbitrary arguments.
type ActionCreator func(args ...any) Action
