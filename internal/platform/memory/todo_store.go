package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"todoapi/internal/domain"
	"todoapi/internal/store"
)

// TodoStore is an in-memory implementation of store.TodoStore.
//
// All state is held behind a single mutex, which gives the atomicity
// the store contract requires: ID assignment happens under the lock,
// and Update/Delete perform their read-then-write without releasing it.
// Items are kept in insertion order for List.
type TodoStore struct {
	mu     sync.Mutex
	items  map[int64]*domain.TodoItem
	order  []int64
	nextID int64
	logger *slog.Logger
}

// NewTodoStore creates an empty in-memory todo store.
// If logger is nil, the default logger is used.
func NewTodoStore(logger *slog.Logger) *TodoStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoStore{
		items:  make(map[int64]*domain.TodoItem),
		logger: logger.With(slog.String("component", "memory_todo_store")),
	}
}

// Ensure TodoStore implements store.TodoStore interface
var _ store.TodoStore = (*TodoStore)(nil)

// Create implements store.TodoStore.Create.
// IDs are assigned from a monotonically increasing counter starting at
// 1 and are never reused, even after deletes.
func (s *TodoStore) Create(ctx context.Context, item *domain.TodoItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	item.ID = s.nextID

	stored := *item
	s.items[item.ID] = &stored
	s.order = append(s.order, item.ID)

	s.logger.Debug("todo item created", slog.Int64("id", item.ID))
	return nil
}

// GetByID implements store.TodoStore.GetByID.
func (s *TodoStore) GetByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.IsDeleted {
		return nil, store.ErrTodoNotFound
	}

	found := *item
	return &found, nil
}

// Update implements store.TodoStore.Update. The lookup and the write
// happen under the same lock, so concurrent updates on one id resolve
// to last-writer-wins without interleaving.
func (s *TodoStore) Update(ctx context.Context, id int64, name string, isComplete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.IsDeleted {
		return store.ErrTodoNotFound
	}

	if err := item.Apply(name, isComplete); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.logger.Debug("todo item updated", slog.Int64("id", id))
	return nil
}

// Delete implements store.TodoStore.Delete. The record is kept with
// IsDeleted set; a second delete on the same id reports not-found.
func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.IsDeleted {
		return store.ErrTodoNotFound
	}

	if err := item.MarkDeleted(); err != nil {
		return store.ErrTodoNotFound
	}

	s.logger.Debug("todo item soft-deleted", slog.Int64("id", id))
	return nil
}

// List implements store.TodoStore.List, returning live items in
// insertion order.
func (s *TodoStore) List(ctx context.Context, filter store.TodoFilter) ([]*domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []*domain.TodoItem{}
	for _, id := range s.order {
		item := s.items[id]
		if item.IsDeleted {
			continue
		}
		if filter.CompleteOnly && !item.IsComplete {
			continue
		}

		found := *item
		items = append(items, &found)
	}

	return items, nil
}
