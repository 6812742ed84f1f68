// Package action defines the closed set of actions a todo store accepts
// and the creators callers use to build them.
//
// Action is sealed: only the variants declared here implement it, so a type
// switch over Create, Edit, Toggle, Delete, Select and Init covers every
// value a reducer can receive.
package action

import (
	"github.com/google/uuid"

	"github.com/idilsaglam/todostore/internal/model"
)

// Kind is the wire discriminant of an action.
type Kind string

const (
	KindInit   Kind = "@@INIT"
	KindCreate Kind = "CREATE_TODO"
	KindEdit   Kind = "EDIT_TODO"
	KindToggle Kind = "TOGGLE_TODO"
	KindDelete Kind = "DELETE_TODO"
	KindSelect Kind = "SELECT_TODO"
)

// Action is an immutable description of a requested state change.
type Action interface {
	Kind() Kind
	sealed()
}

// Init is dispatched by a store once, when it is constructed.
// No reducer recognizes it.
type Init struct{}

// Create appends Todo to the list.
type Create struct {
	Todo model.Todo
}

// Edit replaces the description of the todo with ID.
type Edit struct {
	ID   string `json:"id"`
	Desc string `json:"desc"`
}

// Toggle sets the completion flag of the todo with ID.
type Toggle struct {
	ID         string `json:"id"`
	IsComplete bool   `json:"isComplete"`
}

// Delete removes the todo with ID.
type Delete struct {
	ID string `json:"id"`
}

// Select marks the todo with ID as the current selection.
type Select struct {
	ID string `json:"id"`
}

func (Init) Kind() Kind   { return KindInit }
func (Create) Kind() Kind { return KindCreate }
func (Edit) Kind() Kind   { return KindEdit }
func (Toggle) Kind() Kind { return KindToggle }
func (Delete) Kind() Kind { return KindDelete }
func (Select) Kind() Kind { return KindSelect }

func (Init) sealed()   {}
func (Create) sealed() {}
func (Edit) sealed()   {}
func (Toggle) sealed() {}
func (Delete) sealed() {}
func (Select) sealed() {}

// newID is swapped out in tests that need deterministic ids.
var newID = uuid.NewString

// NewCreate builds a Create action for a fresh, pending todo.
// The description is taken as is; empty text is allowed.
func NewCreate(desc string) Create {
	return Create{Todo: model.Todo{
		ID:         newID(),
		Desc:       desc,
		IsComplete: false,
	}}
}

func NewEdit(id, desc string) Edit {
	return Edit{ID: id, Desc: desc}
}

func NewToggle(id string, isComplete bool) Toggle {
	return Toggle{ID: id, IsComplete: isComplete}
}

func NewDelete(id string) Delete {
	return Delete{ID: id}
}

func NewSelect(id string) Select {
	return Select{ID: id}
}

// Mutates reports whether a is one of the todo mutations (Create, Edit,
// Toggle, Delete), whether or not it matches an existing id.
func Mutates(a Action) bool {
	switch a.(type) {
	case Create, Edit, Toggle, Delete:
		return true
	}
	return false
}
