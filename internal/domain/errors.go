package domain

import "errors"

// Quota errors
var (
	ErrSoundLimitReached = errors.New("sound limit reached")
	ErrDurationExceeded  = errors.New("sound duration exceeds limit")
)
