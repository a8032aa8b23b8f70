package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"todoapi/internal/api"
	apiMiddleware "todoapi/internal/api/middleware"
	"todoapi/internal/config"
	"todoapi/internal/platform/memory"
	"todoapi/internal/platform/postgres"
	"todoapi/internal/service"
	"todoapi/internal/store"
)

// todoBasePath is the route prefix for the todo endpoints and the base
// of the Location header on creation.
const todoBasePath = "/api/todoitems"

// application holds the wired dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB // nil for the memory backend
	todoStore   store.TodoStore
	todoService service.TodoService
}

// newApplication builds the dependency graph: store per configured
// backend, then the service on top of it. For the postgres backend the
// schema migrations run before the store is handed out.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Database.Backend {
	case config.BackendMemory:
		app.todoStore = memory.NewTodoStore(logger)

	case config.BackendPostgres:
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db, logger); err != nil {
			app.closeDB(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.db = db
		app.todoStore = postgres.NewTodoStore(db, logger)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Database.Backend)
	}

	app.todoService = service.NewTodoService(app.todoStore, todoBasePath, logger)
	return app, nil
}

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	todoHandler := api.NewTodoHandler(app.todoService, app.logger)

	r.Route(todoBasePath, func(r chi.Router) {
		r.Get("/", todoHandler.ListTodos)
		r.Get("/complete", todoHandler.ListCompleteTodos)
		r.Get("/{id}", todoHandler.GetTodo)
		r.Post("/", todoHandler.CreateTodo)
		r.Put("/{id}", todoHandler.UpdateTodo)
		r.Delete("/{id}", todoHandler.DeleteTodo)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		app.closeDB(app.db)
		app.db = nil
	}
}

func (app *application) closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
