package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Patient events
	EventPatientCreated = "patient.created"
	EventPatientUpdated = "patient.updated"
	EventPatientDeleted = "patient.deleted"

	// Appointment events
	EventAppointmentScheduled     = "appointment.scheduled"
	EventAppointmentCancelled     = "appointment.cancelled"
	EventAppointmentStatusChanged = "appointment.status_changed"

	// Treatment events
	EventTreatmentCreated       = "treatment.created"
	EventTreatmentStatusChanged = "treatment.status_changed"

	// Payment events
	EventPaymentRecorded = "payment.recorded"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientCreatedEvent represents a patient creation event
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   string    `json:"patient_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientUpdatedEvent represents a patient update event
type PatientUpdatedEvent struct {
	BaseEvent
	Data PatientUpdatedData `json:"data"`
}

type PatientUpdatedData struct {
	PatientID string    `json:"patient_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PatientDeletedEvent represents a patient deletion event
type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID string    `json:"patient_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// AppointmentScheduledEvent represents a newly booked appointment
type AppointmentScheduledEvent struct {
	BaseEvent
	Data AppointmentScheduledData `json:"data"`
}

type AppointmentScheduledData struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DentistID     string `json:"dentist_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Duration      int    `json:"duration"`
}

// AppointmentCancelledEvent represents an appointment cancellation
type AppointmentCancelledEvent struct {
	BaseEvent
	Data AppointmentCancelledData `json:"data"`
}

type AppointmentCancelledData struct {
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DentistID     string    `json:"dentist_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

// AppointmentStatusChangedEvent represents an appointment status transition
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// TreatmentCreatedEvent represents a treatment plan entry creation
type TreatmentCreatedEvent struct {
	BaseEvent
	Data TreatmentCreatedData `json:"data"`
}

type TreatmentCreatedData struct {
	TreatmentID string    `json:"treatment_id"`
	PatientID   string    `json:"patient_id"`
	ToothNumber *int      `json:"tooth_number,omitempty"`
	ConditionID string    `json:"condition_id"`
	Status      string    `json:"status"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// TreatmentStatusChangedEvent represents a treatment status transition
type TreatmentStatusChangedEvent struct {
	BaseEvent
	Data TreatmentStatusChangedData `json:"data"`
}

type TreatmentStatusChangedData struct {
	TreatmentID   string    `json:"treatment_id"`
	PatientID     string    `json:"patient_id"`
	AppointmentID *string   `json:"appointment_id,omitempty"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// PaymentRecordedEvent represents a recorded payment
type PaymentRecordedEvent struct {
	BaseEvent
	Data PaymentRecordedData `json:"data"`
}

type PaymentRecordedData struct {
	PaymentID        string    `json:"payment_id"`
	PatientID        string    `json:"patient_id"`
	TotalAmount      float64   `json:"total_amount"`
	AmountPaid       float64   `json:"amount_paid"`
	IsBalancePayment bool      `json:"is_balance_payment"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentDate      string    `json:"payment_date"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "clinic-service",
	}
}
