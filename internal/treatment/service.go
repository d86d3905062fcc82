package treatment

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dentchartzz/clinic-service/internal/messaging"
	"github.com/dentchartzz/clinic-service/internal/tooth"
)

// ToothDirectory resolves tooth master data
type ToothDirectory interface {
	GetToothByNumber(ctx context.Context, number int) (*tooth.Tooth, error)
}

// Service handles treatment business logic
type Service struct {
	repo      RepositoryInterface
	teeth     ToothDirectory
	publisher messaging.PublisherInterface
}

// NewService creates a new treatment service
func NewService(repo RepositoryInterface, teeth ToothDirectory, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		teeth:     teeth,
		publisher: publisher,
	}
}

// parseCost turns the request's cost field into a non-negative amount.
// Empty or unparseable input means zero.
func parseCost(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil || cost < 0 {
		return 0
	}
	return cost
}

// splitToothIDs parses the comma-separated tooth ID list
func splitToothIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// CreateTreatments creates one treatment per tooth in the request.
// Each new treatment gets an initial history row with no previous status.
func (s *Service) CreateTreatments(ctx context.Context, patientID string, req *CreateTreatmentRequest, dentistID string) ([]TreatmentResponse, error) {
	toothIDs := splitToothIDs(req.ToothIDs)
	if len(toothIDs) == 0 {
		return nil, ErrMissingTeeth
	}
	if strings.TrimSpace(req.ConditionID) == "" {
		return nil, ErrMissingCondition
	}

	status := req.Status
	if status == "" {
		status = StatusPlanned
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	cost := parseCost(req.Cost)

	var appointmentID *string
	if req.AppointmentID != "" {
		appointmentID = &req.AppointmentID
	}

	var actingDentist *string
	if dentistID != "" {
		actingDentist = &dentistID
	}

	treatments := make([]TreatmentResponse, 0, len(toothIDs))
	for _, toothID := range toothIDs {
		id, err := s.repo.CreateTreatment(ctx, patientID, toothID, req.ConditionID, appointmentID, req.Description, status, cost)
		if err != nil {
			return nil, err
		}

		err = s.repo.AddHistory(ctx, &HistoryRecord{
			TreatmentID:   id,
			Status:        status,
			AppointmentID: appointmentID,
			DentistID:     actingDentist,
			Notes:         "Treatment created",
		})
		if err != nil {
			return nil, err
		}

		created, err := s.repo.GetTreatment(ctx, id)
		if err != nil {
			return nil, err
		}

		s.publishTreatmentCreated(ctx, created)
		treatments = append(treatments, *created)
	}

	return treatments, nil
}

// GetTreatment returns one treatment with its full status history
func (s *Service) GetTreatment(ctx context.Context, id string) (*TreatmentResponse, error) {
	treatment, err := s.repo.GetTreatment(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	treatment.History = history

	return treatment, nil
}

// UpdateStatus changes a treatment's status. A history row is written only
// when the status actually changes; saving the same status updates
// description and cost without touching the history.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *UpdateStatusRequest, dentistID string) (*TreatmentResponse, error) {
	if !ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	existing, err := s.repo.GetTreatment(ctx, id)
	if err != nil {
		return nil, err
	}

	// Context appointment: explicit request value, else the treatment's
	// existing appointment link.
	contextAppointmentID := req.CurrentAppointmentID
	if contextAppointmentID == "" && existing.AppointmentID != nil {
		contextAppointmentID = *existing.AppointmentID
	}

	var appointmentUpdate *string
	if contextAppointmentID != "" {
		appointmentUpdate = &contextAppointmentID
	}

	// Cost stays non-negative on update, like on creation
	cost := req.Cost
	if cost != nil && *cost < 0 {
		zero := 0.0
		cost = &zero
	}

	err = s.repo.UpdateTreatment(ctx, id, &req.Status, req.Description, cost, appointmentUpdate)
	if err != nil {
		return nil, err
	}

	if req.Status != existing.Status {
		var actingDentist *string
		if dentistID != "" {
			actingDentist = &dentistID
		}

		previous := existing.Status
		record := &HistoryRecord{
			TreatmentID:    id,
			Status:         req.Status,
			PreviousStatus: &previous,
			AppointmentID:  appointmentUpdate,
			DentistID:      actingDentist,
			Notes:          fmt.Sprintf("Status changed from %s to %s", previous, req.Status),
		}
		if err := s.repo.AddHistory(ctx, record); err != nil {
			return nil, err
		}

		s.publishStatusChanged(ctx, existing, req.Status, appointmentUpdate)
	}

	return s.GetTreatment(ctx, id)
}

// GetToothTreatments returns all treatments recorded for a tooth number,
// optionally restricted to one patient, each with its history
func (s *Service) GetToothTreatments(ctx context.Context, toothNumber int, patientID string) (*ToothTreatmentsResponse, error) {
	toothInfo, err := s.teeth.GetToothByNumber(ctx, toothNumber)
	if err != nil {
		return nil, err
	}

	treatments, err := s.repo.ListByTooth(ctx, toothInfo.ID, patientID)
	if err != nil {
		return nil, err
	}

	entries := make([]ToothTreatmentEntry, 0, len(treatments))
	for _, t := range treatments {
		history, err := s.repo.ListHistory(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if history == nil {
			history = []HistoryEntry{}
		}

		entries = append(entries, ToothTreatmentEntry{
			ID:              t.ID,
			ConditionName:   t.ConditionName,
			Description:     t.Description,
			Status:          t.Status,
			StatusDisplay:   t.StatusDisplay,
			Cost:            t.Cost,
			CreatedAt:       formatCreatedAt(t.CreatedAt),
			AppointmentID:   t.AppointmentID,
			AppointmentDate: t.AppointmentDate,
			History:         history,
		})
	}

	return &ToothTreatmentsResponse{
		Success:    true,
		ToothID:    toothInfo.Number,
		ToothName:  toothInfo.Name,
		Treatments: entries,
	}, nil
}

func (s *Service) publishTreatmentCreated(ctx context.Context, t *TreatmentResponse) {
	toothNumber := t.ToothNumber
	event := messaging.TreatmentCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventTreatmentCreated),
		Data: messaging.TreatmentCreatedData{
			TreatmentID: t.ID,
			PatientID:   t.PatientID,
			ToothNumber: &toothNumber,
			ConditionID: t.ConditionID,
			Status:      t.Status,
			Cost:        t.Cost,
			CreatedAt:   time.Now().UTC(),
		},
	}

	if err := s.publisher.Publish(ctx, messaging.EventTreatmentCreated, event); err != nil {
		log.Printf("Warning: failed to publish treatment created event: %v", err)
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, existing *TreatmentResponse, newStatus string, appointmentID *string) {
	event := messaging.TreatmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventTreatmentStatusChanged),
		Data: messaging.TreatmentStatusChangedData{
			TreatmentID:   existing.ID,
			PatientID:     existing.PatientID,
			AppointmentID: appointmentID,
			OldStatus:     existing.Status,
			NewStatus:     newStatus,
			ChangedAt:     time.Now().UTC(),
		},
	}

	if err := s.publisher.Publish(ctx, messaging.EventTreatmentStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish treatment status event: %v", err)
	}
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
