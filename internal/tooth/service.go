package tooth

import (
	"context"
	"fmt"
)

// TreatmentStats provides per-tooth treatment aggregates for a patient.
// When appointmentID is non-empty only that appointment's treatments count.
type TreatmentStats interface {
	CountsByTooth(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error)
}

// PatientChecker verifies that a patient exists
type PatientChecker interface {
	PatientExists(ctx context.Context, id string) (bool, error)
}

// Service builds dental chart projections
type Service struct {
	repo       RepositoryInterface
	treatments TreatmentStats
	patients   PatientChecker
}

// NewService creates a new tooth service
func NewService(repo RepositoryInterface, treatments TreatmentStats, patients PatientChecker) *Service {
	return &Service{
		repo:       repo,
		treatments: treatments,
		patients:   patients,
	}
}

// ErrPatientNotFound is returned when the chart's patient does not exist
var ErrPatientNotFound = fmt.Errorf("patient not found")

// GetChart builds a patient's dental chart. When appointmentID is non-empty
// the treatment flags and counts are restricted to that appointment.
func (s *Service) GetChart(ctx context.Context, patientID, appointmentID string) (*ChartResponse, error) {
	exists, err := s.patients.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	teeth, err := s.repo.ListTeeth(ctx)
	if err != nil {
		return nil, err
	}

	conditions, err := s.repo.ListConditions(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.treatments.CountsByTooth(ctx, patientID, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate treatments: %w", err)
	}

	entries := make([]ToothChartEntry, 0, len(teeth))
	for _, t := range teeth {
		c := counts[t.ID]
		entry := ToothChartEntry{
			Tooth:         t,
			HasTreatments: c.Total > 0,
			HasPlanned:    c.Planned > 0,
			HasInProgress: c.InProgress > 0,
			HasCompleted:  c.Completed > 0,
			Counts:        c,
		}
		if appointmentID != "" {
			entry.HasAppointmentTreatments = c.Total > 0
		}
		entries = append(entries, entry)
	}

	if conditions == nil {
		conditions = []ToothCondition{}
	}

	return &ChartResponse{
		Success:               true,
		PatientID:             patientID,
		SelectedAppointmentID: appointmentID,
		Teeth:                 entries,
		Conditions:            conditions,
	}, nil
}

// ListConditions returns the condition master data
func (s *Service) ListConditions(ctx context.Context) ([]ToothCondition, error) {
	conditions, err := s.repo.ListConditions(ctx)
	if err != nil {
		return nil, err
	}
	if conditions == nil {
		conditions = []ToothCondition{}
	}
	return conditions, nil
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
