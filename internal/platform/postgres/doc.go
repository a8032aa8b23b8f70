// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx stdlib driver through database/sql.
//
// Soft deletion is a column, not a DELETE: every statement filters on
// is_deleted = FALSE, so deleted rows stay in the table but are
// invisible to the application. Single-statement UPDATEs give the
// atomic read-then-write the store contract asks for.
package postgres
