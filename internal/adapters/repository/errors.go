package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound     = errors.New("instructor not found")
	ErrInvalidLimit = errors.New("invalid catalog limit")
	ErrMissingID    = errors.New("instructor id must not be empty")
)
