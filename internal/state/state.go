// Package state holds the root state of the todo store and the pure
// reducers that move it from one value to the next.
package state

import (
	"slices"

	"github.com/google/uuid"

	"github.com/idilsaglam/todostore/internal/model"
)

// RootState combines the three slices. SelectedTodo is nil when nothing
// has been selected.
type RootState struct {
	Todos        []model.Todo `json:"todos"`
	SelectedTodo *string      `json:"selectedTodo"`
	Counter      int          `json:"counter"`
}

// Initial returns the seed state a store starts from.
func Initial() RootState {
	return RootState{
		Todos: []model.Todo{
			{ID: uuid.NewString(), Desc: "Learn React", IsComplete: true},
			{ID: uuid.NewString(), Desc: "Learn Redux", IsComplete: true},
			{ID: uuid.NewString(), Desc: "Learn Redux-ToolKit", IsComplete: false},
		},
		SelectedTodo: nil,
		Counter:      0,
	}
}

// Selected returns the selected id, if any.
func (s RootState) Selected() (string, bool) {
	if s.SelectedTodo == nil {
		return "", false
	}
	return *s.SelectedTodo, true
}

// Find returns the first todo with id.
func (s RootState) Find(id string) (model.Todo, bool) {
	for _, t := range s.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Stats counts done and pending todos.
func (s RootState) Stats() (done, pending int) {
	for _, t := range s.Todos {
		if t.IsComplete {
			done++
		} else {
			pending++
		}
	}
	return
}

// Clone returns a copy that shares no memory with s.
func (s RootState) Clone() RootState {
	out := RootState{
		Todos:   slices.Clone(s.Todos),
		Counter: s.Counter,
	}
	if s.SelectedTodo != nil {
		id := *s.SelectedTodo
		out.SelectedTodo = &id
	}
	return out
}
