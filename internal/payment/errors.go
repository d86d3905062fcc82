package payment

import "errors"

var (
	// ErrInvalidMethod is returned when the payment method is not one of
	// cash, card, insurance, other
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrNegativeAmount is returned when total_amount or amount_paid is negative
	ErrNegativeAmount = errors.New("amounts must not be negative")

	// ErrInvalidDate is returned when payment_date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid payment date format, expected YYYY-MM-DD")

	// ErrNotFound is returned when a payment does not exist
	ErrNotFound = errors.New("payment not found")

	// ErrPatientNotFound is returned when the payment's patient does not exist
	ErrPatientNotFound = errors.New("patient not found")
)
