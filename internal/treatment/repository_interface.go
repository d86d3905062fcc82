package treatment

import (
	"context"

	"github.com/dentchartzz/clinic-service/internal/tooth"
)

// RepositoryInterface defines the contract for treatment data access
type RepositoryInterface interface {
	CreateTreatment(ctx context.Context, patientID, toothID, conditionID string, appointmentID *string, description, status string, cost float64) (string, error)
	GetTreatment(ctx context.Context, id string) (*TreatmentResponse, error)
	ListByTooth(ctx context.Context, toothID, patientID string) ([]TreatmentResponse, error)
	UpdateTreatment(ctx context.Context, id string, status, description *string, cost *float64, appointmentID *string) error
	AddHistory(ctx context.Context, record *HistoryRecord) error
	ListHistory(ctx context.Context, treatmentID string) ([]HistoryEntry, error)
	CountsByTooth(ctx context.Context, patientID, appointmentID string) (map[string]tooth.TreatmentCounts, error)
}
