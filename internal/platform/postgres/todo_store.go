package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"todoapi/internal/domain"
	"todoapi/internal/platform/logger"
	"todoapi/internal/store"
)

// PostgreSQL error codes
const pgCheckViolationCode = "23514"

// TodoStore implements the store.TodoStore interface using a
// PostgreSQL database as the storage backend.
type TodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTodoStore creates a new PostgreSQL implementation of the
// TodoStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewTodoStore(db store.DBTX, logger *slog.Logger) *TodoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_todo_store")),
	}
}

// Ensure TodoStore implements store.TodoStore interface
var _ store.TodoStore = (*TodoStore)(nil)

// Create implements store.TodoStore.Create.
// The ID comes from the table's sequence via RETURNING, which makes
// assignment atomic across concurrent creates and never reuses values.
func (s *TodoStore) Create(ctx context.Context, item *domain.TodoItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO todos (name, is_complete, is_deleted, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.IsComplete,
		item.IsDeleted,
		item.CreatedAt,
		item.CreatedBy,
	).Scan(&item.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolationCode {
			log.Warn("check constraint violation during todo creation",
				slog.String("constraint", pgErr.ConstraintName))
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrNameTooLong)
		}

		log.Error("failed to create todo item",
			slog.String("error", err.Error()))
		return err
	}

	log.Info("todo item created", slog.Int64("id", item.ID))
	return nil
}

// GetByID implements store.TodoStore.GetByID.
// Returns store.ErrTodoNotFound for absent and soft-deleted rows alike.
func (s *TodoStore) GetByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, is_complete, is_deleted, created_at, created_by
		FROM todos
		WHERE id = $1 AND is_deleted = FALSE
	`

	var item domain.TodoItem
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.IsComplete,
		&item.IsDeleted,
		&item.CreatedAt,
		&item.CreatedBy,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo item not found", slog.Int64("id", id))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo item by ID",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return nil, err
	}

	return &item, nil
}

// Update implements store.TodoStore.Update. Only name and is_complete
// are written; created_at, created_by and is_deleted never appear in
// the SET clause. The WHERE clause keeps deleted rows out of reach and
// the single statement gives last-writer-wins atomicity.
func (s *TodoStore) Update(ctx context.Context, id int64, name string, isComplete bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tmp := domain.TodoItem{Name: name}
	if err := tmp.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE todos
		SET name = $1, is_complete = $2
		WHERE id = $3 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, name, isComplete, id)
	if err != nil {
		log.Error("failed to update todo item",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("todo item not found for update", slog.Int64("id", id))
		return store.ErrTodoNotFound
	}

	log.Info("todo item updated", slog.Int64("id", id))
	return nil
}

// Delete implements store.TodoStore.Delete as a soft delete: the row
// is flagged, never removed. Deleting an already-deleted row affects
// zero rows and reports not-found, which makes a second delete on the
// same id indistinguishable from deleting a missing one.
func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE todos
		SET is_deleted = TRUE
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete todo item",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("todo item not found for delete", slog.Int64("id", id))
		return store.ErrTodoNotFound
	}

	log.Info("todo item soft-deleted", slog.Int64("id", id))
	return nil
}

// List implements store.TodoStore.List. Ordering by id matches
// insertion order since ids are sequence-assigned.
func (s *TodoStore) List(ctx context.Context, filter store.TodoFilter) ([]*domain.TodoItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, is_complete, is_deleted, created_at, created_by
		FROM todos
		WHERE is_deleted = FALSE
	`
	args := []any{}
	if filter.CompleteOnly {
		query += ` AND is_complete = $1`
		args = append(args, true)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query todo items",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.TodoItem{}
	for rows.Next() {
		var item domain.TodoItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.IsComplete,
			&item.IsDeleted,
			&item.CreatedAt,
			&item.CreatedBy,
		)
		if err != nil {
			log.Error("failed to scan todo row",
				slog.String("error", err.Error()))
			return nil, err
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed todo items",
		slog.Bool("complete_only", filter.CompleteOnly),
		slog.Int("count", len(items)))
	return items, nil
}
