package patient

import "time"

// CreatePatientRequest represents the request to create a new patient
type CreatePatientRequest struct {
	Name               string `json:"name" validate:"required"`
	Age                int    `json:"age" validate:"required"`
	Gender             string `json:"gender" validate:"required"` // M, F or O
	DateOfBirth        string `json:"date_of_birth"`              // Format: YYYY-MM-DD
	Phone              string `json:"phone" validate:"required"`
	Email              string `json:"email"`
	Address            string `json:"address" validate:"required"`
	ChiefComplaint     string `json:"chief_complaint"`
	MedicalHistory     string `json:"medical_history"`
	DrugAllergies      string `json:"drug_allergies"`
	PreviousDentalWork string `json:"previous_dental_work"`
}

// UpdatePatientRequest represents the request to update a patient
type UpdatePatientRequest struct {
	Name               *string `json:"name,omitempty"`
	Age                *int    `json:"age,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	DateOfBirth        *string `json:"date_of_birth,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty"`
	Address            *string `json:"address,omitempty"`
	ChiefComplaint     *string `json:"chief_complaint,omitempty"`
	MedicalHistory     *string `json:"medical_history,omitempty"`
	DrugAllergies      *string `json:"drug_allergies,omitempty"`
	PreviousDentalWork *string `json:"previous_dental_work,omitempty"`
}

// PatientResponse represents the patient data returned to clients
type PatientResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Age                int        `json:"age"`
	Gender             string     `json:"gender"`
	DateOfBirth        *string    `json:"date_of_birth,omitempty"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Address            string     `json:"address"`
	ChiefComplaint     string     `json:"chief_complaint"`
	MedicalHistory     string     `json:"medical_history"`
	DrugAllergies      string     `json:"drug_allergies"`
	PreviousDentalWork string     `json:"previous_dental_work"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ComplaintsResponse represents the chief complaints recorded for a patient
type ComplaintsResponse struct {
	PatientID  string   `json:"patient_id"`
	Complaints []string `json:"complaints"`
}
