package treatment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dentchartzz/clinic-service/internal/messaging"
	"github.com/dentchartzz/clinic-service/internal/testutil"
	"github.com/dentchartzz/clinic-service/internal/tooth"
)

type updateCall struct {
	id            string
	status        *string
	description   *string
	cost          *float64
	appointmentID *string
}

type mockRepository struct {
	treatments map[string]*TreatmentResponse
	order      []string
	history    map[string][]HistoryRecord
	updates    []updateCall
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		treatments: make(map[string]*TreatmentResponse),
		history:    make(map[string][]HistoryRecord),
	}
}

func (m *mockRepository) CreateTreatment(ctx context.Context, patientID, toothID, conditionID string, appointmentID *string, description, status string, cost float64) (string, error) {
	id := fmt.Sprintf("treatment-%d", len(m.order)+1)
	m.treatments[id] = &TreatmentResponse{
		ID:            id,
		PatientID:     patientID,
		ToothID:       toothID,
		ConditionID:   conditionID,
		ConditionName: "Caries",
		AppointmentID: appointmentID,
		Description:   description,
		Status:        status,
		StatusDisplay: StatusDisplay(status),
		Cost:          cost,
		CreatedAt:     "2026-08-31 10:00:00",
	}
	m.order = append(m.order, id)
	return id, nil
}

func (m *mockRepository) GetTreatment(ctx context.Context, id string) (*TreatmentResponse, error) {
	t, ok := m.treatments[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	return &out, nil
}

func (m *mockRepository) ListByTooth(ctx context.Context, toothID, patientID string) ([]TreatmentResponse, error) {
	var out []TreatmentResponse
	for i := len(m.order) - 1; i >= 0; i-- {
		t := m.treatments[m.order[i]]
		if t.ToothID != toothID {
			continue
		}
		if patientID != "" && t.PatientID != patientID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockRepository) UpdateTreatment(ctx context.Context, id string, status, description *string, cost *float64, appointmentID *string) error {
	t, ok := m.treatments[id]
	if !ok {
		return ErrNotFound
	}
	m.updates = append(m.updates, updateCall{id, status, description, cost, appointmentID})
	if status != nil {
		t.Status = *status
		t.StatusDisplay = StatusDisplay(*status)
	}
	if description != nil {
		t.Description = *description
	}
	if cost != nil {
		t.Cost = *cost
	}
	if appointmentID != nil {
		appt := *appointmentID
		t.AppointmentID = &appt
	}
	return nil
}

func (m *mockRepository) AddHistory(ctx context.Context, record *HistoryRecord) error {
	m.history[record.TreatmentID] = append(m.history[record.TreatmentID], *record)
	return nil
}

func (m *mockRepository) ListHistory(ctx context.Context, treatmentID string) ([]HistoryEntry, error) {
	records := m.history[treatmentID]
	var out []HistoryEntry
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		out = append(out, HistoryEntry{
			ID:             fmt.Sprintf("history-%d", i+1),
			TreatmentID:    record.TreatmentID,
			Status:         record.Status,
			StatusDisplay:  StatusDisplay(record.Status),
			PreviousStatus: record.PreviousStatus,
			AppointmentID:  record.AppointmentID,
			DentistID:      record.DentistID,
			Notes:          record.Notes,
			CreatedAt:      "2026-08-31 10:00:00",
		})
	}
	return out, nil
}

func (m *mockRepository) CountsByTooth(ctx context.Context, patientID, appointmentID string) (map[string]tooth.TreatmentCounts, error) {
	return map[string]tooth.TreatmentCounts{}, nil
}

type mockToothDirectory struct {
	teeth map[int]*tooth.Tooth
}

func (m *mockToothDirectory) GetToothByNumber(ctx context.Context, number int) (*tooth.Tooth, error) {
	if t, ok := m.teeth[number]; ok {
		return t, nil
	}
	return nil, tooth.ErrNotFound
}

func testToothDirectory() *mockToothDirectory {
	return &mockToothDirectory{teeth: map[int]*tooth.Tooth{
		11: {ID: "t-11", Number: 11, Name: "Upper Right Central Incisor", Quadrant: 1, Position: 1},
	}}
}

func TestCreateTreatments_OnePerTooth(t *testing.T) {
	repo := newMockRepository()
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, testToothDirectory(), publisher)

	req := &CreateTreatmentRequest{
		ToothIDs:    "t-11, t-12,t-13",
		ConditionID: "cond-1",
		Cost:        "150.50",
	}

	treatments, err := service.CreateTreatments(context.Background(), "patient-1", req, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(treatments) != 3 {
		t.Fatalf("Expected 3 treatments, got %d", len(treatments))
	}

	for _, created := range treatments {
		if created.Status != StatusPlanned {
			t.Errorf("Expected default status planned, got %q", created.Status)
		}
		if created.Cost != 150.50 {
			t.Errorf("Expected cost 150.50, got %v", created.Cost)
		}

		records := repo.history[created.ID]
		if len(records) != 1 {
			t.Fatalf("Expected 1 history row for %s, got %d", created.ID, len(records))
		}
		if records[0].PreviousStatus != nil {
			t.Errorf("Expected nil previous status on creation, got %v", *records[0].PreviousStatus)
		}
		if records[0].Notes != "Treatment created" {
			t.Errorf("Expected creation notes, got %q", records[0].Notes)
		}
	}

	publisher.AssertEventCount(t, messaging.EventTreatmentCreated, 3)
}

func TestCreateTreatments_CostCoercion(t *testing.T) {
	tests := []struct {
		name string
		cost string
		want float64
	}{
		{"empty", "", 0},
		{"not a number", "abc", 0},
		{"negative", "-5", 0},
		{"decimal", "150.50", 150.50},
		{"integer", "2000", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())

			req := &CreateTreatmentRequest{ToothIDs: "t-11", ConditionID: "cond-1", Cost: tt.cost}
			treatments, err := service.CreateTreatments(context.Background(), "patient-1", req, "dentist-1")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if treatments[0].Cost != tt.want {
				t.Errorf("Expected cost %v, got %v", tt.want, treatments[0].Cost)
			}
		})
	}
}

func TestUpdateStatus_NegativeCostCoercion(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	id, _ := repo.CreateTreatment(context.Background(), "patient-1", "t-11", "cond-1", nil, "", StatusPlanned, 100)

	negative := -50.0
	updated, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status: StatusPlanned,
		Cost:   &negative,
	}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Cost != 0 {
		t.Errorf("Expected cost 0, got %v", updated.Cost)
	}
	if repo.updates[0].cost == nil || *repo.updates[0].cost != 0 {
		t.Errorf("Expected repository to receive cost 0, got %v", repo.updates[0].cost)
	}

	positive := 250.0
	updated, err = service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status: StatusPlanned,
		Cost:   &positive,
	}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Cost != 250 {
		t.Errorf("Expected cost 250, got %v", updated.Cost)
	}
}

func TestCreateTreatments_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateTreatmentRequest
		wantErr error
	}{
		{"no teeth", &CreateTreatmentRequest{ToothIDs: " , ", ConditionID: "cond-1"}, ErrMissingTeeth},
		{"no condition", &CreateTreatmentRequest{ToothIDs: "t-11", ConditionID: " "}, ErrMissingCondition},
		{"bad status", &CreateTreatmentRequest{ToothIDs: "t-11", ConditionID: "cond-1", Status: "done"}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := testutil.NewMockPublisher()
			service := NewService(newMockRepository(), testToothDirectory(), publisher)

			_, err := service.CreateTreatments(context.Background(), "patient-1", tt.req, "dentist-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if publisher.GetEventCount() != 0 {
				t.Error("Expected no events on validation failure")
			}
		})
	}
}

func seedTreatment(repo *mockRepository, status string, appointmentID *string) string {
	id, _ := repo.CreateTreatment(context.Background(), "patient-1", "t-11", "cond-1", appointmentID, "", status, 100)
	return id
}

func TestUpdateStatus_TransitionWritesHistory(t *testing.T) {
	repo := newMockRepository()
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, testToothDirectory(), publisher)
	id := seedTreatment(repo, StatusPlanned, nil)

	updated, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusInProgress}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Errorf("Expected status in_progress, got %q", updated.Status)
	}

	records := repo.history[id]
	if len(records) != 1 {
		t.Fatalf("Expected 1 history row, got %d", len(records))
	}
	record := records[0]
	if record.PreviousStatus == nil || *record.PreviousStatus != StatusPlanned {
		t.Errorf("Expected previous status planned, got %v", record.PreviousStatus)
	}
	if record.Notes != "Status changed from planned to in_progress" {
		t.Errorf("Unexpected notes: %q", record.Notes)
	}
	if record.DentistID == nil || *record.DentistID != "dentist-1" {
		t.Errorf("Expected dentist-1 on history row, got %v", record.DentistID)
	}

	publisher.AssertEventPublished(t, messaging.EventTreatmentStatusChanged)
}

func TestUpdateStatus_NoOpSaveSkipsHistory(t *testing.T) {
	repo := newMockRepository()
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, testToothDirectory(), publisher)
	id := seedTreatment(repo, StatusPlanned, nil)

	description := "upper molar filling"
	updated, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status:      StatusPlanned,
		Description: &description,
	}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Description != description {
		t.Errorf("Expected description to be updated, got %q", updated.Description)
	}
	if len(repo.history[id]) != 0 {
		t.Errorf("Expected no history rows for a same-status save, got %d", len(repo.history[id]))
	}
	publisher.AssertEventNotPublished(t, messaging.EventTreatmentStatusChanged)
}

func TestUpdateStatus_ContextAppointmentRelink(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	original := "appt-1"
	id := seedTreatment(repo, StatusPlanned, &original)

	_, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status:               StatusCompleted,
		CurrentAppointmentID: "appt-2",
	}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(repo.updates) != 1 {
		t.Fatalf("Expected 1 update call, got %d", len(repo.updates))
	}
	if repo.updates[0].appointmentID == nil || *repo.updates[0].appointmentID != "appt-2" {
		t.Errorf("Expected relink to appt-2, got %v", repo.updates[0].appointmentID)
	}

	record := repo.history[id][0]
	if record.AppointmentID == nil || *record.AppointmentID != "appt-2" {
		t.Errorf("Expected history row tagged with appt-2, got %v", record.AppointmentID)
	}
}

func TestUpdateStatus_FallsBackToExistingAppointment(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	original := "appt-1"
	id := seedTreatment(repo, StatusPlanned, &original)

	_, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusInProgress}, "dentist-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	record := repo.history[id][0]
	if record.AppointmentID == nil || *record.AppointmentID != "appt-1" {
		t.Errorf("Expected history row tagged with appt-1, got %v", record.AppointmentID)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	id := seedTreatment(repo, StatusPlanned, nil)

	_, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: "finished"}, "dentist-1")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	service := NewService(newMockRepository(), testToothDirectory(), testutil.NewMockPublisher())

	_, err := service.UpdateStatus(context.Background(), "missing", &UpdateStatusRequest{Status: StatusCompleted}, "dentist-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetTreatment_IncludesHistory(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	id := seedTreatment(repo, StatusPlanned, nil)

	if _, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusInProgress}, "dentist-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusCompleted}, "dentist-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	treatment, err := service.GetTreatment(context.Background(), id)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(treatment.History) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(treatment.History))
	}
	if treatment.History[0].Status != StatusCompleted {
		t.Errorf("Expected newest history row first, got %q", treatment.History[0].Status)
	}
	if treatment.History[1].Status != StatusInProgress {
		t.Errorf("Expected older history row second, got %q", treatment.History[1].Status)
	}
}

func TestGetToothTreatments_ByNumber(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())

	req := &CreateTreatmentRequest{ToothIDs: "t-11", ConditionID: "cond-1", Cost: "200"}
	if _, err := service.CreateTreatments(context.Background(), "patient-1", req, "dentist-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	resp, err := service.GetToothTreatments(context.Background(), 11, "patient-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.ToothID != 11 {
		t.Errorf("Expected tooth_id 11, got %d", resp.ToothID)
	}
	if resp.ToothName != "Upper Right Central Incisor" {
		t.Errorf("Unexpected tooth name %q", resp.ToothName)
	}
	if len(resp.Treatments) != 1 {
		t.Fatalf("Expected 1 treatment, got %d", len(resp.Treatments))
	}

	entry := resp.Treatments[0]
	if entry.ConditionName != "Caries" {
		t.Errorf("Expected condition name Caries, got %q", entry.ConditionName)
	}
	if entry.CreatedAt != "Aug 31, 2026" {
		t.Errorf("Expected formatted created_at, got %q", entry.CreatedAt)
	}
	if len(entry.History) != 1 {
		t.Errorf("Expected creation history row, got %d rows", len(entry.History))
	}
}

func TestGetToothTreatments_CrossAppointmentHistory(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, testToothDirectory(), testutil.NewMockPublisher())
	first := "appt-1"
	id := seedTreatment(repo, StatusPlanned, &first)

	if _, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status:               StatusInProgress,
		CurrentAppointmentID: "appt-2",
	}, "dentist-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), id, &UpdateStatusRequest{
		Status:               StatusCompleted,
		CurrentAppointmentID: "appt-3",
	}, "dentist-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	resp, err := service.GetToothTreatments(context.Background(), 11, "patient-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	history := resp.Treatments[0].History
	if len(history) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(history))
	}
	if history[0].AppointmentID == nil || *history[0].AppointmentID != "appt-3" {
		t.Errorf("Expected newest row tagged appt-3, got %v", history[0].AppointmentID)
	}
	if history[1].AppointmentID == nil || *history[1].AppointmentID != "appt-2" {
		t.Errorf("Expected older row tagged appt-2, got %v", history[1].AppointmentID)
	}
}

func TestGetToothTreatments_UnknownTooth(t *testing.T) {
	service := NewService(newMockRepository(), testToothDirectory(), testutil.NewMockPublisher())

	_, err := service.GetToothTreatments(context.Background(), 99, "")
	if !errors.Is(err, tooth.ErrNotFound) {
		t.Errorf("Expected tooth.ErrNotFound, got %v", err)
	}
}
