package model

// Todo is the domain model for a todo entry.
// ID is assigned once by the creator and never changes.
type Todo struct {
	ID         string `json:"id"`
	Desc       string `json:"desc"`
	IsComplete bool   `json:"isComplete"`
}
