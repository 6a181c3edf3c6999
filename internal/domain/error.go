package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrCallbackAlreadySent   = errors.New("callback already sent for this session")
	ErrAlreadyQueued         = errors.New("session already queued for review")
	ErrAlreadyReviewed       = errors.New("review item already labeled")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrRateLimited           = errors.New("rate limit exceeded")
)
