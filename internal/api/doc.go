// Package api provides HTTP handlers for the API.
//
// Handlers bind requests into declared DTOs only: the request types
// carry exactly the caller-settable fields, so over-posted fields such
// as id, isDeleted, createdAt or createdBy are dropped at the decoding
// boundary and can never reach a stored entity. Responses are shaped
// through TodoResponse, which never exposes isDeleted or createdBy.
package api
