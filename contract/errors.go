package contract

import "errors"

// Sentinel errors the repositories report so handlers can map persistence
// outcomes onto client-facing statuses without string matching.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownKind    = errors.New("unknown transaction kind")
)
