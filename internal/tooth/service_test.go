package tooth

import (
	"context"
	"errors"
	"testing"
)

type mockRepository struct {
	listTeethFunc        func(ctx context.Context) ([]Tooth, error)
	getToothByNumberFunc func(ctx context.Context, number int) (*Tooth, error)
	listConditionsFunc   func(ctx context.Context) ([]ToothCondition, error)
	getConditionFunc     func(ctx context.Context, id string) (*ToothCondition, error)
}

func (m *mockRepository) ListTeeth(ctx context.Context) ([]Tooth, error) {
	if m.listTeethFunc != nil {
		return m.listTeethFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) GetToothByNumber(ctx context.Context, number int) (*Tooth, error) {
	if m.getToothByNumberFunc != nil {
		return m.getToothByNumberFunc(ctx, number)
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListConditions(ctx context.Context) ([]ToothCondition, error) {
	if m.listConditionsFunc != nil {
		return m.listConditionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) GetCondition(ctx context.Context, id string) (*ToothCondition, error) {
	if m.getConditionFunc != nil {
		return m.getConditionFunc(ctx, id)
	}
	return nil, ErrConditionNotFound
}

type mockTreatmentStats struct {
	countsByToothFunc func(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error)
}

func (m *mockTreatmentStats) CountsByTooth(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error) {
	if m.countsByToothFunc != nil {
		return m.countsByToothFunc(ctx, patientID, appointmentID)
	}
	return map[string]TreatmentCounts{}, nil
}

type mockPatientChecker struct {
	exists bool
	err    error
}

func (m *mockPatientChecker) PatientExists(ctx context.Context, id string) (bool, error) {
	return m.exists, m.err
}

func testTeeth() []Tooth {
	return []Tooth{
		{ID: "t-11", Number: 11, Name: "Upper Right Central Incisor", Quadrant: 1, Position: 1},
		{ID: "t-12", Number: 12, Name: "Upper Right Lateral Incisor", Quadrant: 1, Position: 2},
		{ID: "t-21", Number: 21, Name: "Upper Left Central Incisor", Quadrant: 2, Position: 1},
	}
}

func TestGetChart_TreatmentFlags(t *testing.T) {
	repo := &mockRepository{
		listTeethFunc: func(ctx context.Context) ([]Tooth, error) {
			return testTeeth(), nil
		},
	}
	stats := &mockTreatmentStats{
		countsByToothFunc: func(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error) {
			return map[string]TreatmentCounts{
				"t-11": {Total: 3, Planned: 2, Completed: 1},
				"t-21": {Total: 1, InProgress: 1},
			}, nil
		},
	}
	service := NewService(repo, stats, &mockPatientChecker{exists: true})

	chart, err := service.GetChart(context.Background(), "patient-1", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !chart.Success {
		t.Error("Expected success to be true")
	}
	if len(chart.Teeth) != 3 {
		t.Fatalf("Expected 3 teeth, got %d", len(chart.Teeth))
	}

	first := chart.Teeth[0]
	if !first.HasTreatments || !first.HasPlanned || !first.HasCompleted {
		t.Errorf("Expected tooth 11 to have treatments, planned and completed flags, got %+v", first)
	}
	if first.HasInProgress {
		t.Error("Expected tooth 11 to have no in-progress treatments")
	}
	if first.Counts.Total != 3 {
		t.Errorf("Expected total 3 for tooth 11, got %d", first.Counts.Total)
	}

	second := chart.Teeth[1]
	if second.HasTreatments {
		t.Error("Expected tooth 12 to have no treatments")
	}
	if second.Counts.Total != 0 {
		t.Errorf("Expected total 0 for tooth 12, got %d", second.Counts.Total)
	}

	third := chart.Teeth[2]
	if !third.HasInProgress {
		t.Error("Expected tooth 21 to have in-progress treatments")
	}
}

func TestGetChart_PatientNotFound(t *testing.T) {
	service := NewService(&mockRepository{}, &mockTreatmentStats{}, &mockPatientChecker{exists: false})

	_, err := service.GetChart(context.Background(), "missing", "")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestGetChart_AppointmentFilter(t *testing.T) {
	var gotAppointmentID string
	repo := &mockRepository{
		listTeethFunc: func(ctx context.Context) ([]Tooth, error) {
			return testTeeth(), nil
		},
	}
	stats := &mockTreatmentStats{
		countsByToothFunc: func(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error) {
			gotAppointmentID = appointmentID
			return map[string]TreatmentCounts{
				"t-12": {Total: 1, Planned: 1},
			}, nil
		},
	}
	service := NewService(repo, stats, &mockPatientChecker{exists: true})

	chart, err := service.GetChart(context.Background(), "patient-1", "appt-7")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotAppointmentID != "appt-7" {
		t.Errorf("Expected appointment filter appt-7 to reach the aggregate, got %q", gotAppointmentID)
	}
	if chart.SelectedAppointmentID != "appt-7" {
		t.Errorf("Expected selected appointment appt-7, got %q", chart.SelectedAppointmentID)
	}
	if !chart.Teeth[1].HasAppointmentTreatments {
		t.Error("Expected tooth 12 to be flagged for the selected appointment")
	}
	if chart.Teeth[0].HasAppointmentTreatments {
		t.Error("Expected tooth 11 to not be flagged for the selected appointment")
	}
}

func TestGetChart_NoAppointmentFlagWithoutFilter(t *testing.T) {
	repo := &mockRepository{
		listTeethFunc: func(ctx context.Context) ([]Tooth, error) {
			return testTeeth(), nil
		},
	}
	stats := &mockTreatmentStats{
		countsByToothFunc: func(ctx context.Context, patientID, appointmentID string) (map[string]TreatmentCounts, error) {
			return map[string]TreatmentCounts{"t-11": {Total: 2, Planned: 2}}, nil
		},
	}
	service := NewService(repo, stats, &mockPatientChecker{exists: true})

	chart, err := service.GetChart(context.Background(), "patient-1", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, entry := range chart.Teeth {
		if entry.HasAppointmentTreatments {
			t.Errorf("Expected no appointment flag on tooth %d without a selected appointment", entry.Number)
		}
	}
}

func TestListConditions_EmptyResult(t *testing.T) {
	service := NewService(&mockRepository{}, &mockTreatmentStats{}, &mockPatientChecker{exists: true})

	conditions, err := service.ListConditions(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if conditions == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(conditions) != 0 {
		t.Errorf("Expected 0 conditions, got %d", len(conditions))
	}
}
