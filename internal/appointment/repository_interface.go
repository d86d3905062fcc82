package appointment

import "context"

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest, endTime string) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, f Filters) ([]AppointmentResponse, error)
	ListByDateRange(ctx context.Context, from, to string) ([]AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error)
	ListScheduledForDentist(ctx context.Context, dentistID, date string) ([]AppointmentResponse, error)
	GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest, endTime *string) (*AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (*AppointmentResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
