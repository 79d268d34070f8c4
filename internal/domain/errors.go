package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStructure is returned by the import codec when a payload is not a
// recognized export document (e.g. missing the top-level trip object).
// Import aborts before any write, so no partial trip is left behind.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrStructure = errors.New("invalid document structure")
