package tooth

// Quadrants in the double-digit numbering system
const (
	QuadrantUpperRight = 1
	QuadrantUpperLeft  = 2
	QuadrantLowerLeft  = 3
	QuadrantLowerRight = 4
)

// Tooth is one entry of the fixed 32-tooth master data.
// Number is double-digit: first digit quadrant (1-4), second position (1-8).
type Tooth struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Quadrant int    `json:"quadrant"`
	Position int    `json:"position"`
}

// ToothCondition is a master-data condition (Caries, Filling, ...)
type ToothCondition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TreatmentCounts aggregates a tooth's treatments by status
type TreatmentCounts struct {
	Total      int `json:"total"`
	Planned    int `json:"planned"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// ToothChartEntry is the per-tooth view-model of a patient's dental chart
type ToothChartEntry struct {
	Tooth
	HasTreatments            bool            `json:"has_treatments"`
	HasPlanned               bool            `json:"has_planned_treatments"`
	HasInProgress            bool            `json:"has_in_progress_treatments"`
	HasCompleted             bool            `json:"has_completed_treatments"`
	Counts                   TreatmentCounts `json:"treatment_counts"`
	HasAppointmentTreatments bool            `json:"has_appointment_treatments"`
}

// ChartResponse represents a patient's dental chart
type ChartResponse struct {
	Success               bool              `json:"success"`
	PatientID             string            `json:"patient_id"`
	SelectedAppointmentID string            `json:"selected_appointment_id,omitempty"`
	Teeth                 []ToothChartEntry `json:"teeth"`
	Conditions            []ToothCondition  `json:"conditions"`
}
