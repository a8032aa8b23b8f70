package domain

import (
	"time"
	"unicode/utf8"
)

// MaxNameLength is the maximum number of characters allowed in a todo
// item's name.
const MaxNameLength = 200

// TodoItem represents a single todo entry.
//
// ID is assigned by the store on creation and never changes or gets
// reused. CreatedAt, CreatedBy and IsDeleted are server-controlled:
// they are never settable from a caller-supplied payload. IsDeleted
// moves in one direction only (Live -> Deleted); there is no undelete.
type TodoItem struct {
	ID         int64
	Name       string
	IsComplete bool
	IsDeleted  bool
	CreatedAt  time.Time
	CreatedBy  string
}

// NewTodoItem creates a new TodoItem with the given name, completion
// flag and creator identity. The creation timestamp is stamped from the
// server clock in UTC and the item starts out live. The ID is zero
// until the store assigns one.
// Returns a ValidationError if the name is invalid.
func NewTodoItem(name, createdBy string, isComplete bool) (*TodoItem, error) {
	item := &TodoItem{
		Name:       name,
		IsComplete: isComplete,
		IsDeleted:  false,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  createdBy,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the TodoItem has valid data.
// Returns a ValidationError naming the offending field.
func (t *TodoItem) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "required field")
	}

	if utf8.RuneCountInString(t.Name) > MaxNameLength {
		return NewValidationError("name", "too long")
	}

	return nil
}

// Apply overwrites the caller-mutable fields, name and completion
// state, leaving everything else untouched. This is the only path by
// which request data reaches a stored item, so server-controlled
// fields can never be written through it.
// Returns a ValidationError if the new name is invalid.
func (t *TodoItem) Apply(name string, isComplete bool) error {
	origName := t.Name
	t.Name = name

	if err := t.Validate(); err != nil {
		t.Name = origName
		return err
	}

	t.IsComplete = isComplete
	return nil
}

// MarkDeleted transitions the item from Live to Deleted. The
// transition is one-way: deleting an already-deleted item is an error,
// and no operation ever sets IsDeleted back to false.
func (t *TodoItem) MarkDeleted() error {
	if t.IsDeleted {
		return ErrAlreadyDeleted
	}

	t.IsDeleted = true
	return nil
}
