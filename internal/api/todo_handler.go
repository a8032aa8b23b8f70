package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"todoapi/internal/api/shared"
	"todoapi/internal/domain"
	"todoapi/internal/platform/logger"
	"todoapi/internal/redact"
	"todoapi/internal/service"
	"todoapi/internal/store"
)

// CreateTodoRequest represents the request body for creating a todo item.
// These are the only caller-settable fields; anything else in the
// payload is discarded during decoding.
type CreateTodoRequest struct {
	Name       string `json:"name"       validate:"required,max=200"`
	IsComplete bool   `json:"isComplete"`
}

// UpdateTodoRequest represents the request body for updating a todo item.
// IsComplete is a pointer so that omitting it fails validation instead
// of silently defaulting to false.
type UpdateTodoRequest struct {
	Name       string `json:"name"       validate:"required,max=200"`
	IsComplete *bool  `json:"isComplete" validate:"required"`
}

// TodoResponse represents the response data for a todo item. It is a
// projection: isDeleted and createdBy are never serialized.
type TodoResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoService service.TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, log *slog.Logger) *TodoHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todoService: todoService,
		logger:      log.With(slog.String("component", "todo_handler")),
	}
}

// ListTodos handles GET /api/todoitems/ requests.
// Returns every live item.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	h.listTodos(w, r, store.TodoFilter{})
}

// ListCompleteTodos handles GET /api/todoitems/complete requests.
// Returns live items that are marked complete.
func (h *TodoHandler) ListCompleteTodos(w http.ResponseWriter, r *http.Request) {
	h.listTodos(w, r, store.TodoFilter{CompleteOnly: true})
}

func (h *TodoHandler) listTodos(w http.ResponseWriter, r *http.Request, filter store.TodoFilter) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	items, err := h.todoService.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list todo items", err)
		return
	}

	response := make([]TodoResponse, 0, len(items))
	for _, item := range items {
		response = append(response, todoToResponse(item))
	}

	log.Debug("listed todo items",
		slog.Bool("complete_only", filter.CompleteOnly),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetTodo handles GET /api/todoitems/{id} requests.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseID(r)
	if !ok {
		// A malformed id matches no item; same outcome as an absent one.
		respondNotFound(w)
		return
	}

	item, err := h.todoService.GetByID(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			respondNotFound(w)
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to get todo item", err)
		return
	}

	log.Debug("retrieved todo item", slog.Int64("id", item.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(item))
}

// CreateTodo handles POST /api/todoitems/ requests.
// On success it responds 201 with the created item and a Location
// header pointing at it.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Debug("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithValidationError(w, r,
			http.StatusBadRequest, "Validation error", ValidationFields(err))
		return
	}

	item, location, err := h.todoService.Create(r.Context(), req.Name, req.IsComplete)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrInvalidEntity) {
			shared.RespondWithValidationError(w, r,
				http.StatusBadRequest, GetSafeErrorMessage(err), ValidationFields(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to create todo item", err)
		return
	}

	log.Debug("created todo item",
		slog.Int64("id", item.ID),
		slog.String("location", location))
	w.Header().Set("Location", location)
	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(item))
}

// UpdateTodo handles PUT /api/todoitems/{id} requests.
// On success it responds 204 with no body.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseID(r)
	if !ok {
		respondNotFound(w)
		return
	}

	var req UpdateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Debug("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("id", id))
		shared.RespondWithValidationError(w, r,
			http.StatusBadRequest, "Validation error", ValidationFields(err))
		return
	}

	err := h.todoService.Update(r.Context(), id, req.Name, *req.IsComplete)
	if err != nil {
		switch {
		case store.IsNotFoundError(err):
			respondNotFound(w)
		case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
			shared.RespondWithValidationError(w, r,
				http.StatusBadRequest, GetSafeErrorMessage(err), ValidationFields(err))
		default:
			shared.RespondWithErrorAndLog(w, r,
				MapErrorToStatusCode(err), "Failed to update todo item", err)
		}
		return
	}

	log.Debug("updated todo item", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTodo handles DELETE /api/todoitems/{id} requests.
// On success it responds 204 with no body. A second delete on the same
// id responds 404: the item is already gone as far as callers can tell.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseID(r)
	if !ok {
		respondNotFound(w)
		return
	}

	err := h.todoService.Delete(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			respondNotFound(w)
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to delete todo item", err)
		return
	}

	log.Debug("deleted todo item", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// respondNotFound writes a 404 with no body. A deleted item must be
// indistinguishable from a never-existing one, so there is nothing
// useful to say.
func respondNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// parseID extracts and parses the {id} URL parameter.
func parseID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// todoToResponse converts a domain.TodoItem to a TodoResponse.
func todoToResponse(item *domain.TodoItem) TodoResponse {
	return TodoResponse{
		ID:         item.ID,
		Name:       item.Name,
		IsComplete: item.IsComplete,
		CreatedAt:  item.CreatedAt,
	}
}
