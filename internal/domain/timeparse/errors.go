package timeparse

import "errors"

// Sentinel kinds for time parsing errors.
var (
	ErrUnparseable = errors.New("unparseable time token")
)
