package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// slogGooseLogger adapts the goose logger interface to use slog.
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error
// messages to slog.Error. It does NOT call os.Exit; the error is
// returned to main which handles the exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations brings the schema up to date using the embedded
// migration files. Only runs for the postgres backend.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(embeddedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	logger.Info("Database migrations applied")
	return nil
}
