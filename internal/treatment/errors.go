package treatment

import "errors"

var (
	// ErrMissingTeeth is returned when no tooth IDs are provided
	ErrMissingTeeth = errors.New("at least one tooth is required")

	// ErrMissingCondition is returned when condition_id is empty
	ErrMissingCondition = errors.New("condition is required")

	// ErrInvalidStatus is returned when the status is not one of
	// planned, in_progress, completed, cancelled
	ErrInvalidStatus = errors.New("invalid treatment status")

	// ErrNotFound is returned when a treatment does not exist
	ErrNotFound = errors.New("treatment not found")
)
