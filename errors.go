package flux

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalReentrancy indicates the store was accessed from inside its own reducer.
	ErrIllegalReentrancy = errors.New("flux: illegal reentrancy")

	// ErrUndefinedState indicates a combined slice reducer produced no state.
	ErrUndefinedState = errors.New("flux: reducer produced undefined state")

	// ErrPrematureDispatch indicates a middleware dispatched while the chain was being built.
	ErrPrematureDispatch = errors.New("flux: cannot dispatch while constructing middleware, other middleware would not be applied to this dispatch")

	// ErrNilReducer indicates a store was created without a reducer.
	ErrNilReducer = errors.New("flux: reducer is nil")

	// ErrInvalidAction indicates a nil action or an action without a type.
	ErrInvalidAction = errors.New("flux: action must be non-nil and have a type")
)

// Op names a store operation for reentrancy errors.
type Op string

const (
	OpGetState  Op = "getState"
	OpDispatch  Op = "dispatch"
	OpSubscribe Op = "subscribe"
)

// ReentrancyError reports which operation was attempted while a reducer was running.
type ReentrancyError struct {
	Op Op
}

func (e *ReentrancyError) Error() string {
	switch e.Op {
	case OpGetState:
		return "flux: getState called while the reducer is executing; use the state passed to the reducer instead"
	case OpDispatch:
		return "flux: reducers may not dispatch actions"
	case OpSubscribe:
		return "flux: subscribe called while the reducer is executing"
	}
	return fmt.Sprintf("flux: %s called while the reducer is executing", e.Op)
}

func (e *ReentrancyError) Unwrap() error {
	return ErrIllegalReentrancy
}

// UndefinedStateError reports the slice whose reducer returned nil.
type UndefinedStateError struct {
	Key        string
	ActionType string
}

func (e *UndefinedStateError) Error() string {
	return fmt.Sprintf("flux: reducer for key %q returned undefined state for action %q", e.Key, e.ActionType)
}

func (e *UndefinedStateError) Unwrap() error {
	return ErrUndefinedState
}

// SliceTypeError reports a slice value whose dynamic type does not match its typed reducer.
type SliceTypeError struct {
	Want string
	Got  any
}

func (e *SliceTypeError) Error() string {
	return fmt.Sprintf("flux: slice state has type %T, reducer expects %s", e.Got, e.Want)
}
