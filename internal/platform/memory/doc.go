// Package memory provides a volatile, process-lifetime implementation
// of the store interfaces. It is the default backend and the one used
// by tests: every NewTodoStore call yields an isolated store.
package memory
