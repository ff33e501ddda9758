package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrMalformedWindow = errors.New("malformed window")
)
