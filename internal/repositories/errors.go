package repositories

import "errors"

// Sentinel errors translated to HTTP status codes at the handler layer.
var (
	// ErrNotFound means the id did not resolve to a visible record.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden means the caller is not the owner of the record.
	ErrForbidden = errors.New("not the owner of this record")
)
