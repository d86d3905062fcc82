package patient

import (
	"context"

	"github.com/dentchartzz/clinic-service/internal/pagination"
)

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	ListPatients(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error)
	GetPatient(ctx context.Context, id string) (*PatientResponse, error)
	GetComplaints(ctx context.Context, id string) (*ComplaintsResponse, error)
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
