package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by all handlers.
var Validate = validator.New()

// DecodeJSON decodes the request body into the given struct. Only the
// fields declared on the target are bound; unknown fields in the
// payload are ignored and never reach the caller.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
