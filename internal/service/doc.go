// Package service contains the application services that sit between
// the HTTP handlers and the stores. The todo service owns the write
// restrictions and the soft-delete visibility rule; all state lives in
// the injected store.
package service
