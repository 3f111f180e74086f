package event

import "errors"

// Error taxonomy shared across the content store, the ledger and the HTTP
// layer. Anything not wrapping one of these is treated as transient
// (storage or network trouble) and is retryable.
var (
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("attempt already final")
)

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
