package treatment

import "time"

// Treatment status values
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var statusDisplayNames = map[string]string{
	StatusPlanned:    "Planned",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

// ValidStatus reports whether s is a known treatment status
func ValidStatus(s string) bool {
	_, ok := statusDisplayNames[s]
	return ok
}

// StatusDisplay returns the human-readable form of a status value
func StatusDisplay(s string) string {
	if display, ok := statusDisplayNames[s]; ok {
		return display
	}
	return s
}

// CreateTreatmentRequest creates one treatment per tooth in ToothIDs.
// ToothIDs is a comma-separated list of tooth IDs. A cost that is empty
// or not a number is treated as zero.
type CreateTreatmentRequest struct {
	ToothIDs      string `json:"tooth_ids"`
	ConditionID   string `json:"condition_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	Cost          string `json:"cost,omitempty"`
}

// UpdateStatusRequest updates a treatment's status and optionally its
// description and cost. CurrentAppointmentID names the appointment the
// change is being made under; when empty the treatment's own appointment
// link is kept.
type UpdateStatusRequest struct {
	Status               string   `json:"status"`
	Description          *string  `json:"description,omitempty"`
	Cost                 *float64 `json:"cost,omitempty"`
	CurrentAppointmentID string   `json:"current_appointment_id,omitempty"`
}

// TreatmentResponse represents a treatment in API responses
type TreatmentResponse struct {
	ID              string         `json:"id"`
	PatientID       string         `json:"patient_id"`
	PatientName     string         `json:"patient_name"`
	ToothID         string         `json:"tooth_id"`
	ToothNumber     int            `json:"tooth_number"`
	ToothName       string         `json:"tooth_name"`
	ConditionID     string         `json:"condition_id"`
	ConditionName   string         `json:"condition_name"`
	AppointmentID   *string        `json:"appointment_id,omitempty"`
	AppointmentDate *string        `json:"appointment_date,omitempty"`
	Description     string         `json:"description,omitempty"`
	Status          string         `json:"status"`
	StatusDisplay   string         `json:"status_display"`
	Cost            float64        `json:"cost"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       *string        `json:"updated_at,omitempty"`
	History         []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry is one row of a treatment's status history
type HistoryEntry struct {
	ID              string  `json:"id"`
	TreatmentID     string  `json:"treatment_id"`
	Status          string  `json:"status"`
	StatusDisplay   string  `json:"status_display"`
	PreviousStatus  *string `json:"previous_status,omitempty"`
	AppointmentID   *string `json:"appointment_id,omitempty"`
	AppointmentDate *string `json:"appointment_date,omitempty"`
	DentistID       *string `json:"dentist_id,omitempty"`
	DentistName     *string `json:"dentist_name,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ToothTreatmentEntry is one treatment in the per-tooth treatments API
type ToothTreatmentEntry struct {
	ID              string         `json:"id"`
	ConditionName   string         `json:"condition_name"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	StatusDisplay   string         `json:"status_display"`
	Cost            float64        `json:"cost"`
	CreatedAt       string         `json:"created_at"`
	AppointmentID   *string        `json:"appointment_id,omitempty"`
	AppointmentDate *string        `json:"appointment_date,omitempty"`
	History         []HistoryEntry `json:"history"`
}

// ToothTreatmentsResponse is the per-tooth treatments API payload.
// ToothID carries the tooth number, not the row ID.
type ToothTreatmentsResponse struct {
	Success    bool                  `json:"success"`
	ToothID    int                   `json:"tooth_id"`
	ToothName  string                `json:"tooth_name"`
	Treatments []ToothTreatmentEntry `json:"treatments"`
}

// TreatmentListResponse wraps bulk-created treatments
type TreatmentListResponse struct {
	Success    bool                `json:"success"`
	Treatments []TreatmentResponse `json:"treatments"`
}

// createdAtDisplayLayout renders timestamps like "Aug 31, 2026"
const createdAtDisplayLayout = "Jan 02, 2006"

// repoTimestampLayout is how the repository renders timestamps
const repoTimestampLayout = "2006-01-02 15:04:05"

func formatCreatedAt(raw string) string {
	ts, err := time.Parse(repoTimestampLayout, raw)
	if err != nil {
		return raw
	}
	return ts.Format(createdAtDisplayLayout)
}
