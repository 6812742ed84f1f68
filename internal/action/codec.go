package action

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idilsaglam/todostore/internal/model"
)

var (
	ErrUnknownType    = errors.New("unknown action type")
	ErrMissingPayload = errors.New("missing payload")
	ErrMissingID      = errors.New("missing id")
	ErrCreateComplete = errors.New("new todo must not be complete")
)

// wire is the {type, payload} envelope every action is encoded in.
type wire struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encode(k Kind, payload any) ([]byte, error) {
	if payload == nil {
		return json.Marshal(wire{Type: k})
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json marshal %s: %w", k, err)
	}
	return json.Marshal(wire{Type: k, Payload: b})
}

// Local copies drop the MarshalJSON methods so the payload
// encodes with the plain struct tags.
type (
	editBody   Edit
	toggleBody Toggle
	deleteBody Delete
	selectBody Select
)

func (a Init) MarshalJSON() ([]byte, error)   { return encode(KindInit, nil) }
func (a Create) MarshalJSON() ([]byte, error) { return encode(KindCreate, a.Todo) }
func (a Edit) MarshalJSON() ([]byte, error)   { return encode(KindEdit, editBody(a)) }
func (a Toggle) MarshalJSON() ([]byte, error) { return encode(KindToggle, toggleBody(a)) }
func (a Delete) MarshalJSON() ([]byte, error) { return encode(KindDelete, deleteBody(a)) }
func (a Select) MarshalJSON() ([]byte, error) { return encode(KindSelect, selectBody(a)) }

// Decode parses one action from its wire form.
func Decode(b []byte) (Action, error) {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	switch w.Type {
	case KindInit:
		return Init{}, nil
	case KindCreate:
		var t model.Todo
		if err := decodePayload(w, &t); err != nil {
			return nil, err
		}
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("%s: %w", w.Type, ErrMissingID)
		case t.IsComplete:
			return nil, fmt.Errorf("%s %q: %w", w.Type, t.ID, ErrCreateComplete)
		}
		return Create{Todo: t}, nil
	case KindEdit:
		var p editBody
		if err := decodePayload(w, &p); err != nil {
			return nil, err
		}
		return Edit(p), nil
	case KindToggle:
		var p toggleBody
		if err := decodePayload(w, &p); err != nil {
			return nil, err
		}
		return Toggle(p), nil
	case KindDelete:
		var p deleteBody
		if err := decodePayload(w, &p); err != nil {
			return nil, err
		}
		return Delete(p), nil
	case KindSelect:
		var p selectBody
		if err := decodePayload(w, &p); err != nil {
			return nil, err
		}
		return Select(p), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, w.Type)
}

func decodePayload(w wire, dst any) error {
	if len(w.Payload) == 0 || string(w.Payload) == "null" {
		return fmt.Errorf("%s: %w", w.Type, ErrMissingPayload)
	}
	if err := json.Unmarshal(w.Payload, dst); err != nil {
		return fmt.Errorf("%s payload: %w", w.Type, err)
	}
	return nil
}
