package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/domain"
	"todoapi/internal/store"
)

func newTestItem(t *testing.T, name string, isComplete bool) *domain.TodoItem {
	t.Helper()
	item, err := domain.NewTodoItem(name, "anonymous", isComplete)
	require.NoError(t, err)
	return item
}

func TestTodoStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns_sequential_ids", func(t *testing.T) {
		s := NewTodoStore(nil)

		first := newTestItem(t, "first", false)
		second := newTestItem(t, "second", false)

		require.NoError(t, s.Create(ctx, first))
		require.NoError(t, s.Create(ctx, second))

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("rejects_invalid_item_without_writing", func(t *testing.T) {
		s := NewTodoStore(nil)

		invalid := &domain.TodoItem{Name: ""}
		err := s.Create(ctx, invalid)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrValidation)

		items, err := s.List(ctx, store.TodoFilter{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("ids_are_not_reused_after_delete", func(t *testing.T) {
		s := NewTodoStore(nil)

		first := newTestItem(t, "first", false)
		require.NoError(t, s.Create(ctx, first))
		require.NoError(t, s.Delete(ctx, first.ID))

		second := newTestItem(t, "second", false)
		require.NoError(t, s.Create(ctx, second))
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("concurrent_creates_get_unique_ids", func(t *testing.T) {
		s := NewTodoStore(nil)
		const n = 50

		ids := make([]int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item := &domain.TodoItem{Name: "concurrent", CreatedBy: "anonymous"}
				if err := s.Create(ctx, item); err == nil {
					ids[i] = item.ID
				}
			}(i)
		}
		wg.Wait()

		seen := make(map[int64]bool, n)
		for _, id := range ids {
			require.NotZero(t, id)
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
		}
	})
}

func TestTodoStore_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_created_item", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", true)
		require.NoError(t, s.Create(ctx, item))

		found, err := s.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, "walk dog", found.Name)
		assert.True(t, found.IsComplete)
		assert.Equal(t, item.CreatedAt, found.CreatedAt)
		assert.Equal(t, "anonymous", found.CreatedBy)
	})

	t.Run("missing_id", func(t *testing.T) {
		s := NewTodoStore(nil)
		_, err := s.GetByID(ctx, 999)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("deleted_item_is_indistinguishable_from_missing", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))
		require.NoError(t, s.Delete(ctx, item.ID))

		_, err := s.GetByID(ctx, item.ID)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("returned_item_is_a_copy", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))

		found, err := s.GetByID(ctx, item.ID)
		require.NoError(t, err)
		found.Name = "mutated"

		again, err := s.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "walk dog", again.Name)
	})
}

func TestTodoStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates_only_name_and_completion", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))

		require.NoError(t, s.Update(ctx, item.ID, "feed dog", true))

		found, err := s.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "feed dog", found.Name)
		assert.True(t, found.IsComplete)
		assert.Equal(t, item.CreatedAt, found.CreatedAt)
		assert.Equal(t, item.CreatedBy, found.CreatedBy)
		assert.False(t, found.IsDeleted)
	})

	t.Run("missing_id", func(t *testing.T) {
		s := NewTodoStore(nil)
		err := s.Update(ctx, 999, "x", true)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("deleted_item", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))
		require.NoError(t, s.Delete(ctx, item.ID))

		err := s.Update(ctx, item.ID, "x", true)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("invalid_name_leaves_record_unchanged", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))

		err := s.Update(ctx, item.ID, "", true)
		require.ErrorIs(t, err, store.ErrInvalidEntity)

		found, err := s.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "walk dog", found.Name)
		assert.False(t, found.IsComplete)
	})
}

func TestTodoStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft_deletes_live_item", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))

		require.NoError(t, s.Delete(ctx, item.ID))

		_, err := s.GetByID(ctx, item.ID)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("second_delete_reports_not_found", func(t *testing.T) {
		s := NewTodoStore(nil)
		item := newTestItem(t, "walk dog", false)
		require.NoError(t, s.Create(ctx, item))

		require.NoError(t, s.Delete(ctx, item.ID))
		err := s.Delete(ctx, item.ID)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})

	t.Run("missing_id", func(t *testing.T) {
		s := NewTodoStore(nil)
		err := s.Delete(ctx, 999)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
	})
}

func TestTodoStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_store_yields_empty_slice", func(t *testing.T) {
		s := NewTodoStore(nil)
		items, err := s.List(ctx, store.TodoFilter{})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("returns_items_in_insertion_order", func(t *testing.T) {
		s := NewTodoStore(nil)
		for _, name := range []string{"first", "second", "third"} {
			require.NoError(t, s.Create(ctx, newTestItem(t, name, false)))
		}

		items, err := s.List(ctx, store.TodoFilter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "first", items[0].Name)
		assert.Equal(t, "second", items[1].Name)
		assert.Equal(t, "third", items[2].Name)
	})

	t.Run("complete_only_filter", func(t *testing.T) {
		s := NewTodoStore(nil)
		require.NoError(t, s.Create(ctx, newTestItem(t, "open", false)))
		require.NoError(t, s.Create(ctx, newTestItem(t, "done", true)))

		items, err := s.List(ctx, store.TodoFilter{CompleteOnly: true})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "done", items[0].Name)
	})

	t.Run("excludes_deleted_items_from_both_filters", func(t *testing.T) {
		s := NewTodoStore(nil)
		done := newTestItem(t, "done", true)
		require.NoError(t, s.Create(ctx, done))
		require.NoError(t, s.Create(ctx, newTestItem(t, "open", false)))
		require.NoError(t, s.Delete(ctx, done.ID))

		all, err := s.List(ctx, store.TodoFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "open", all[0].Name)

		complete, err := s.List(ctx, store.TodoFilter{CompleteOnly: true})
		require.NoError(t, err)
		assert.Empty(t, complete)
	})
}
