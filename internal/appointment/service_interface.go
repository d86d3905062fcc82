package appointment

import "context"

// ServiceInterface defines the contract for appointment business logic operations
type ServiceInterface interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, f Filters) ([]AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error)
	GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
	Calendar(ctx context.Context, weekStart string) (*CalendarResponse, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
	TimeSlots(ctx context.Context, dentistID, date, excludeAppointmentID, selected string) (*TimeSlotsResponse, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
