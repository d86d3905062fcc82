package appointment

import "time"

// Appointment statuses
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// ValidStatus reports whether s is a known appointment status
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CreateAppointmentRequest represents the request to schedule an appointment
type CreateAppointmentRequest struct {
	PatientID      string `json:"patient_id" validate:"required"`
	DentistID      string `json:"dentist_id" validate:"required"`
	Date           string `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime      string `json:"start_time" validate:"required"` // Format: HH:MM
	Duration       int    `json:"duration"`                       // Minutes, default 30
	Notes          string `json:"notes"`
	ChiefComplaint string `json:"chief_complaint"` // Updates the patient record when set
}

// UpdateAppointmentRequest represents the request to update an appointment
type UpdateAppointmentRequest struct {
	PatientID *string `json:"patient_id,omitempty"`
	DentistID *string `json:"dentist_id,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// AppointmentResponse represents the appointment data returned to clients
type AppointmentResponse struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	DentistID   string     `json:"dentist_id"`
	DentistName string     `json:"dentist_name"`
	Date        string     `json:"date"`       // YYYY-MM-DD
	StartTime   string     `json:"start_time"` // HH:MM
	EndTime     string     `json:"end_time"`   // HH:MM
	Duration    int        `json:"duration"`   // Minutes
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Filters narrows an appointment listing
type Filters struct {
	Date      string
	DentistID string
	Status    string
}

// CalendarDay is one day's bucket in the week calendar
type CalendarDay struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// CalendarResponse represents a week of appointments
type CalendarResponse struct {
	Success   bool          `json:"success"`
	WeekStart string        `json:"week_start"`
	WeekEnd   string        `json:"week_end"`
	PrevWeek  string        `json:"prev_week"`
	NextWeek  string        `json:"next_week"`
	Days      []CalendarDay `json:"days"`
}

// TimeSlotsResponse represents the slot grid for a dentist and date
type TimeSlotsResponse struct {
	TimeSlots []TimeSlot `json:"time_slots"`
}
