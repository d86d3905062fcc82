package tooth

import "errors"

var (
	// ErrNotFound is returned when a tooth does not exist
	ErrNotFound = errors.New("tooth not found")

	// ErrConditionNotFound is returned when a tooth condition does not exist
	ErrConditionNotFound = errors.New("tooth condition not found")
)
