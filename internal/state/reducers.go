package state

import (
	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/model"
)

// Reducer is a pure transition of the root state.
type Reducer func(RootState, action.Action) RootState

// Reduce applies each slice reducer to its own slice.
func Reduce(s RootState, a action.Action) RootState {
	return RootState{
		Todos:        Todos(s.Todos, a),
		SelectedTodo: SelectedTodo(s.SelectedTodo, a),
		Counter:      Counter(s.Counter, a),
	}
}

// Todos never writes to its input; recognized actions return a new slice
// and anything else returns todos itself.
func Todos(todos []model.Todo, a action.Action) []model.Todo {
	switch a := a.(type) {
	case action.Create:
		out := make([]model.Todo, len(todos), len(todos)+1)
		copy(out, todos)
		return append(out, a.Todo)

	case action.Edit:
		return mapTodos(todos, a.ID, func(t model.Todo) model.Todo {
			t.Desc = a.Desc
			return t
		})

	case action.Toggle:
		return mapTodos(todos, a.ID, func(t model.Todo) model.Todo {
			t.IsComplete = a.IsComplete
			return t
		})

	case action.Delete:
		out := make([]model.Todo, 0, len(todos))
		for _, t := range todos {
			if t.ID != a.ID {
				out = append(out, t)
			}
		}
		return out
	}
	return todos
}

// mapTodos applies fn to every todo with id, so duplicate ids all change.
func mapTodos(todos []model.Todo, id string, fn func(model.Todo) model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		if t.ID == id {
			t = fn(t)
		}
		out[i] = t
	}
	return out
}

// SelectedTodo only reacts to Select. Deleting the selected todo leaves
// the selection pointing at the removed id.
func SelectedTodo(selected *string, a action.Action) *string {
	if a, ok := a.(action.Select); ok {
		id := a.ID
		return &id
	}
	return selected
}

// Counter counts todo mutations, including deletes and ids that match nothing.
func Counter(n int, a action.Action) int {
	if action.Mutates(a) {
		return n + 1
	}
	return n
}
