package services

import "errors"

var (
	// ErrJobNotOwned covers both absence and foreign ownership; callers must
	// not be able to tell the two apart.
	ErrJobNotOwned = errors.New("job not found or not owned by caller")

	ErrActionNotFound = errors.New("action not found or not owned by caller")

	ErrMissingFields = errors.New("required fields missing")

	// ErrStorageUnavailable surfaces a missing object storage configuration
	// at upload time.
	ErrStorageUnavailable = errors.New("upload storage not configured")
)
