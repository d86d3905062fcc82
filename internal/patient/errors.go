package patient

import "errors"

var (
	ErrMissingName    = errors.New("name is required")
	ErrMissingAge     = errors.New("age is required")
	ErrMissingGender  = errors.New("gender is required")
	ErrInvalidGender  = errors.New("gender must be one of M, F, O")
	ErrMissingPhone   = errors.New("phone is required")
	ErrMissingAddress = errors.New("address is required")
	ErrInvalidDate    = errors.New("date_of_birth must be in YYYY-MM-DD format")
	ErrNotFound       = errors.New("patient not found")
)
