package main

import (
	"errors"
	"fmt"

	"github.com/spetersoncode/flux"
	"github.com/spetersoncode/flux/middleware"
)

// Action types.
const (
	AddTodo        = "ADD_TODO"
	ToggleTodo     = "TOGGLE_TODO"
	ClearCompleted = "CLEAR_COMPLETED"
	SetFilter      = "SET_FILTER"
)

// Visibility filters.
const (
	FilterAll    = "all"
	FilterActive = "active"
	FilterDone   = "done"
)

var (
	ErrNoSuchTodo    = errors.New("no such todo")
	ErrEmptyTodo     = errors.New("todo text is empty")
	ErrUnknownFilter = errors.New("unknown filter")
)

// rootReducer combines the todo list and the visibility filter.
var rootReducer = flux.Combine(map[string]flux.Reducer[any]{
	"todos":  flux.AsAny[[]any](todosReducer),
	"filter": flux.AsAny[string](filterReducer),
})

// Todos are stored as flux.State values with "text" and "done" keys, the
// shape Combine and persist.Restore both produce.
func todosReducer(todos []any, a flux.Action) ([]any, error) {
	if todos == nil {
		todos = []any{}
	}

	switch a.Type() {
	case AddTodo:
		text, _ := payload(a).(string)
		if text == "" {
			return nil, ErrEmptyTodo
		}
		next := append(todos[:len(todos):len(todos)], flux.NewState(map[string]any{
			"text": text,
			"done": false,
		}))
		return next, nil

	case ToggleTodo:
		index, _ := payload(a).(int)
		if index < 0 || index >= len(todos) {
			return nil, fmt.Errorf("%w: %d", ErrNoSuchTodo, index)
		}
		item, ok := todos[index].(flux.State)
		if !ok {
			return nil, fmt.Errorf("todo %d has unexpected type %T", index, todos[index])
		}
		done, _ := item.Get("done").(bool)
		next := make([]any, len(todos))
		copy(next, todos)
		next[index] = item.With("done", !done)
		return next, nil

	case ClearCompleted:
		next := make([]any, 0, len(todos))
		for _, t := range todos {
			if item, ok := t.(flux.State); ok {
				if done, _ := item.Get("done").(bool); done {
					continue
				}
			}
			next = append(next, t)
		}
		return next, nil
	}

	return todos, nil
}

func filterReducer(filter string, a flux.Action) (string, error) {
	if filter == "" {
		filter = FilterAll
	}
	if a.Type() != SetFilter {
		return filter, nil
	}
	next, _ := payload(a).(string)
	switch next {
	case FilterAll, FilterActive, FilterDone:
		return next, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, next)
}

func payload(a flux.Action) any {
	if p, ok := a.(flux.Plain); ok {
		return p.Payload
	}
	return nil
}

// creators are bound to a store's dispatch by flux.BindMap.
var creators = map[string]flux.ActionCreator{
	"add": func(args ...any) flux.Action {
		return flux.Plain{Kind: AddTodo, Payload: firstArg(args)}
	},
	"toggle": func(args ...any) flux.Action {
		return flux.Plain{Kind: ToggleTodo, Payload: firstArg(args)}
	},
	"clear": func(...any) flux.Action {
		return flux.Plain{Kind: ClearCompleted}
	},
	"filter": func(args ...any) flux.Action {
		return flux.Plain{Kind: SetFilter, Payload: firstArg(args)}
	},
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// addAll adds several todos in one dispatch. It stops at the first failure
// and reports how many were added.
func addAll(texts ...string) middleware.Func[flux.State] {
	return func(dispatch flux.Dispatch, _ func() (flux.State, error), _ any) (any, error) {
		for i, text := range texts {
			if _, err := dispatch(flux.Plain{Kind: AddTodo, Payload: text}); err != nil {
				return i, err
			}
		}
		return len(texts), nil
	}
}

// Todo is a read-only view of one list entry.
type Todo struct {
	Index int
	Text  string
	Done  bool
}

// visible returns the todos selected by the current filter.
func visible(state flux.State) []Todo {
	filter, _ := state.Get("filter").(string)
	items, _ := state.Get("todos").([]any)

	var out []Todo
	for i, t := range items {
		item, ok := t.(flux.State)
		if !ok {
			continue
		}
		todo := Todo{Index: i}
		todo.Text, _ = item.Get("text").(string)
		todo.Done, _ = item.Get("done").(bool)

		switch filter {
		case FilterActive:
			if todo.Done {
				continue
			}
		case FilterDone:
			if !todo.Done {
				continue
			}
		}
		out = append(out, todo)
	}
	return out
}
