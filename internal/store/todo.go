package store

import (
	"context"

	"todoapi/internal/domain"
)

// TodoFilter narrows the set of items returned by List. Soft-deleted
// items are always excluded regardless of the filter.
type TodoFilter struct {
	// CompleteOnly restricts the result to items with IsComplete set.
	CompleteOnly bool
}

// TodoStore defines the interface for todo item persistence.
//
// Soft-deleted items are invisible to every method: GetByID, Update and
// Delete treat them as absent, and List never returns them. The record
// itself is never physically erased.
//
// Concurrency contract: implementations must be safe for concurrent use.
// ID assignment in Create is atomic (no two creates observe the same
// id, and ids are never reused), and Update/Delete perform their
// read-then-write as a single atomic step relative to other writers on
// the same id. Last-writer-wins is acceptable.
type TodoStore interface {
	// Create saves a new todo item and assigns its ID, writing the
	// assigned value back to item.ID.
	// Returns ErrInvalidEntity (wrapping the validation detail) if the
	// item fails domain validation; nothing is written in that case.
	Create(ctx context.Context, item *domain.TodoItem) error

	// GetByID retrieves a live todo item by its ID.
	// Returns ErrTodoNotFound if no item with that ID exists or the
	// item has been soft-deleted.
	GetByID(ctx context.Context, id int64) (*domain.TodoItem, error)

	// Update overwrites the name and completion flag of the live item
	// with the given ID. All other fields are left untouched.
	// Returns ErrTodoNotFound if no live item matches the ID.
	Update(ctx context.Context, id int64, name string, isComplete bool) error

	// Delete soft-deletes the live item with the given ID. The record
	// stays in the store with IsDeleted set; it is not removed.
	// Returns ErrTodoNotFound if no live item matches the ID, including
	// when the item was already deleted.
	Delete(ctx context.Context, id int64) error

	// List returns the live items matching the filter in insertion
	// order. An empty result is an empty slice, never nil.
	List(ctx context.Context, filter TodoFilter) ([]*domain.TodoItem, error)
}
