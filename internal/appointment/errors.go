package appointment

import "errors"

var (
	ErrMissingPatient   = errors.New("patient_id is required")
	ErrMissingDentist   = errors.New("dentist_id is required")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingStartTime = errors.New("start_time is required")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("start_time must be in HH:MM format")
	ErrInvalidDuration  = errors.New("duration must be between 15 and 240 minutes")
	ErrInvalidStatus    = errors.New("invalid appointment status")
	ErrNotFound         = errors.New("appointment not found")
	ErrSlotTaken        = errors.New("slot already booked for this dentist")
)

// ConflictError reports an overlap with an already scheduled appointment
type ConflictError struct {
	DentistName string
	Date        string
	StartTime   string // display format, e.g. "09:30 AM"
}

func (e *ConflictError) Error() string {
	return "This appointment overlaps with another appointment for " + e.DentistName +
		" on " + e.Date + " at " + e.StartTime + "."
}
