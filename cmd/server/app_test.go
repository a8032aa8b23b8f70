package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/api"
	"todoapi/internal/config"
)

func newTestApp(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := newApplication(cfg, logger)
	require.NoError(t, err)
	return app
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewApplication_RejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{Backend: "cassandra"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := newApplication(cfg, logger)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	w := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

// TestTodoLifecycleOverHTTP drives a single item through the whole API:
// create, list both ways, delete, then verify it is gone everywhere.
func TestTodoLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	// Create
	w := do(t, router, http.MethodPost, "/api/todoitems/",
		`{"name": "walk dog", "isComplete": true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/todoitems/1", w.Header().Get("Location"))

	var created api.TodoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "walk dog", created.Name)
	assert.True(t, created.IsComplete)
	assert.False(t, created.CreatedAt.IsZero())

	// List all
	w = do(t, router, http.MethodGet, "/api/todoitems/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []api.TodoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, created, all[0])

	// List complete
	w = do(t, router, http.MethodGet, "/api/todoitems/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	var complete []api.TodoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &complete))
	require.Len(t, complete, 1)
	assert.Equal(t, created, complete[0])

	// Delete
	w = do(t, router, http.MethodDelete, "/api/todoitems/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// Get after delete
	w = do(t, router, http.MethodGet, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// Delete again: already gone
	w = do(t, router, http.MethodDelete, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// List all is empty again
	w = do(t, router, http.MethodGet, "/api/todoitems/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

// TestOverPostingDoesNotTouchStoredRecord sends update payloads loaded
// with server-controlled fields and verifies the stored record keeps
// its original identity fields.
func TestOverPostingDoesNotTouchStoredRecord(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	w := do(t, router, http.MethodPost, "/api/todoitems/", `{"name": "walk dog"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	stored, err := app.todoStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	originalCreatedAt := stored.CreatedAt
	originalCreatedBy := stored.CreatedBy

	w = do(t, router, http.MethodPut, "/api/todoitems/1", `{
		"id": 42,
		"name": "feed dog",
		"isComplete": true,
		"isDeleted": true,
		"createdBy": "attacker",
		"createdAt": "1999-01-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err = app.todoStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)
	assert.Equal(t, "feed dog", stored.Name)
	assert.True(t, stored.IsComplete)
	assert.False(t, stored.IsDeleted)
	assert.Equal(t, originalCreatedAt, stored.CreatedAt)
	assert.Equal(t, originalCreatedBy, stored.CreatedBy)
}

// TestCreateValidationOverHTTP verifies a rejected create leaves the
// store untouched.
func TestCreateValidationOverHTTP(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	w := do(t, router, http.MethodPost, "/api/todoitems/", `{"name": ""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var respBody map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	fields, ok := respBody["fields"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "name")

	w = do(t, router, http.MethodGet, "/api/todoitems/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

// TestUpdateMissingIDOverHTTP: a PUT on a nonexistent id is a 404 and
// creates nothing.
func TestUpdateMissingIDOverHTTP(t *testing.T) {
	app := newTestApp(t)
	router := app.setupRouter()

	w := do(t, router, http.MethodPut, "/api/todoitems/999",
		`{"name": "x", "isComplete": true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/todoitems/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
