package users

import "errors"

var (
	// ErrMissingUsername is returned when username is empty
	ErrMissingUsername = errors.New("username is required")

	// ErrMissingFullName is returned when full_name is empty
	ErrMissingFullName = errors.New("full name is required")

	// ErrInvalidRole is returned when the role is not admin, dentist or staff
	ErrInvalidRole = errors.New("invalid role")

	// ErrUsernameTaken is returned when the username already exists
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNotFound is returned when a user does not exist
	ErrNotFound = errors.New("user not found")
)
