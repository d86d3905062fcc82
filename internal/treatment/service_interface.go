package treatment

import "context"

// ServiceInterface defines the contract for treatment operations
type ServiceInterface interface {
	CreateTreatments(ctx context.Context, patientID string, req *CreateTreatmentRequest, dentistID string) ([]TreatmentResponse, error)
	GetTreatment(ctx context.Context, id string) (*TreatmentResponse, error)
	UpdateStatus(ctx context.Context, id string, req *UpdateStatusRequest, dentistID string) (*TreatmentResponse, error)
	GetToothTreatments(ctx context.Context, toothNumber int, patientID string) (*ToothTreatmentsResponse, error)
}
