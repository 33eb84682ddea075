package source

import "errors"

// Errors returned by source operations.
var (
	// ErrReadOnly indicates modification was attempted on a frozen
	// configuration.
	ErrReadOnly = errors.New("configuration is read-only")
)
