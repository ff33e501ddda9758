package matching

import "errors"

// Sentinel kinds for matching errors.
var (
	ErrNoMatch = errors.New("no matching instructor")
)
