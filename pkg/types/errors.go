package types

import "errors"

// Domain errors for type validation
var (
	ErrMissingPath     = errors.New("result path is required")
	ErrMissingFilename = errors.New("result filename is required")
	ErrInvalidScore    = errors.New("score must be between -1 and 1")
)
