package service

import (
	"context"
	"fmt"
	"log/slog"

	"todoapi/internal/domain"
	"todoapi/internal/platform/logger"
	"todoapi/internal/store"
)

// PlaceholderCreatedBy is the caller identity recorded on created items
// while no authentication context exists.
const PlaceholderCreatedBy = "anonymous"

// TodoService defines the application operations on todo items.
//
// Callers can only ever influence an item's name and completion flag.
// Create and Update accept those two values and nothing else, so
// server-controlled fields (id, createdAt, createdBy, isDeleted) are
// unreachable from request data no matter what a payload contains.
type TodoService interface {
	// List returns the live items matching the filter in insertion
	// order. Soft-deleted items never appear. Empty result is an empty
	// slice, not nil.
	List(ctx context.Context, filter store.TodoFilter) ([]*domain.TodoItem, error)

	// GetByID returns the live item with the given id, or
	// store.ErrTodoNotFound if it is absent or soft-deleted.
	GetByID(ctx context.Context, id int64) (*domain.TodoItem, error)

	// Create validates the name, stamps the server-controlled fields
	// and persists a new item. Returns the created item together with
	// its location reference ("{basePath}/{id}").
	// Returns a domain.ValidationError without writing anything if the
	// name is invalid.
	Create(ctx context.Context, name string, isComplete bool) (*domain.TodoItem, string, error)

	// Update overwrites name and completion flag on the live item with
	// the given id. Returns a domain.ValidationError if the name is
	// invalid, store.ErrTodoNotFound if no live item matches.
	Update(ctx context.Context, id int64, name string, isComplete bool) error

	// Delete soft-deletes the live item with the given id. Returns
	// store.ErrTodoNotFound if no live item matches, including when the
	// item was already deleted.
	Delete(ctx context.Context, id int64) error
}

// todoService is the default TodoService implementation. It is
// stateless: every call goes straight to the injected store.
type todoService struct {
	store    store.TodoStore
	basePath string
	logger   *slog.Logger
}

// NewTodoService creates a TodoService backed by the given store.
// basePath is the API path prefix used to build location references for
// created items (e.g. "/api/todoitems").
func NewTodoService(todoStore store.TodoStore, basePath string, log *slog.Logger) TodoService {
	if todoStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("todoStore cannot be nil for TodoService")
	}
	if log == nil {
		log = slog.Default()
	}

	return &todoService{
		store:    todoStore,
		basePath: basePath,
		logger:   log.With(slog.String("component", "todo_service")),
	}
}

// List implements TodoService.List.
func (s *todoService) List(ctx context.Context, filter store.TodoFilter) ([]*domain.TodoItem, error) {
	return s.store.List(ctx, filter)
}

// GetByID implements TodoService.GetByID.
func (s *todoService) GetByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	return s.store.GetByID(ctx, id)
}

// Create implements TodoService.Create.
func (s *todoService) Create(ctx context.Context, name string, isComplete bool) (*domain.TodoItem, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewTodoItem(name, PlaceholderCreatedBy, isComplete)
	if err != nil {
		log.Debug("todo creation rejected", slog.String("error", err.Error()))
		return nil, "", err
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, "", err
	}

	location := fmt.Sprintf("%s/%d", s.basePath, item.ID)
	log.Info("todo item created",
		slog.Int64("id", item.ID),
		slog.String("location", location))
	return item, location, nil
}

// Update implements TodoService.Update. Validation happens before the
// store is touched, so a rejected request leaves no partial write.
func (s *todoService) Update(ctx context.Context, id int64, name string, isComplete bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.TodoItem{Name: name}
	if err := probe.Validate(); err != nil {
		log.Debug("todo update rejected",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return err
	}

	return s.store.Update(ctx, id, name, isComplete)
}

// Delete implements TodoService.Delete.
func (s *todoService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
