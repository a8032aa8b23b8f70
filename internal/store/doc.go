// Package store defines the persistence interfaces and errors shared by
// all storage backends. Implementations live under internal/platform.
package store
