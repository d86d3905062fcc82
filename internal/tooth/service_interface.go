package tooth

import "context"

// ServiceInterface defines the contract for dental chart operations
type ServiceInterface interface {
	GetChart(ctx context.Context, patientID, appointmentID string) (*ChartResponse, error)
	ListConditions(ctx context.Context) ([]ToothCondition, error)
}
