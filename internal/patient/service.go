package patient

import (
	"context"
	"log"
	"time"

	"github.com/dentchartzz/clinic-service/internal/messaging"
	"github.com/dentchartzz/clinic-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// PaginatedPatientListResponse represents a paginated list of patients
type PaginatedPatientListResponse struct {
	Success    bool              `json:"success"`
	Patients   []PatientResponse `json:"patients"`
	Pagination pagination.Meta   `json:"pagination"`
}

func validGender(g string) bool {
	return g == "M" || g == "F" || g == "O"
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Age <= 0 {
		return nil, ErrMissingAge
	}
	if req.Gender == "" {
		return nil, ErrMissingGender
	}
	if !validGender(req.Gender) {
		return nil, ErrInvalidGender
	}
	if req.Phone == "" {
		return nil, ErrMissingPhone
	}
	if req.Address == "" {
		return nil, ErrMissingAddress
	}
	if req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			return nil, ErrInvalidDate
		}
	}

	created, err := s.repo.CreatePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publishPatientCreated(ctx, created)

	return created, nil
}

func (s *Service) ListPatients(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error) {
	params.Validate()

	patients, total, err := s.repo.ListPatients(ctx, params.Limit, params.CalculateOffset(), params.Search)
	if err != nil {
		return nil, err
	}

	if patients == nil {
		patients = []PatientResponse{}
	}

	return &PaginatedPatientListResponse{
		Success:    true,
		Patients:   patients,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	return s.repo.GetPatient(ctx, id)
}

// GetComplaints returns the recorded chief complaints for a patient.
// Patients without a chief complaint yield an empty list.
func (s *Service) GetComplaints(ctx context.Context, id string) (*ComplaintsResponse, error) {
	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	complaints := []string{}
	if p.ChiefComplaint != "" {
		complaints = append(complaints, p.ChiefComplaint)
	}

	return &ComplaintsResponse{
		PatientID:  p.ID,
		Complaints: complaints,
	}, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	if req.Gender != nil && !validGender(*req.Gender) {
		return nil, ErrInvalidGender
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", *req.DateOfBirth); err != nil {
			return nil, ErrInvalidDate
		}
	}

	updated, err := s.repo.UpdatePatient(ctx, id, req)
	if err != nil {
		return nil, err
	}

	event := messaging.PatientUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientUpdated),
		Data: messaging.PatientUpdatedData{
			PatientID: updated.ID,
			Name:      updated.Name,
			UpdatedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientUpdated, event); err != nil {
		log.Printf("Warning: failed to publish patient.updated event: %v", err)
	}

	return updated, nil
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	event := messaging.PatientDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
		Data: messaging.PatientDeletedData{
			PatientID: id,
			DeletedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientDeleted, event); err != nil {
		log.Printf("Warning: failed to publish patient.deleted event: %v", err)
	}

	return nil
}

func (s *Service) publishPatientCreated(ctx context.Context, p *PatientResponse) {
	data := messaging.PatientCreatedData{
		PatientID: p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
	if p.DateOfBirth != nil {
		data.DateOfBirth = *p.DateOfBirth
	}

	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data:      data,
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
		log.Printf("Warning: failed to publish patient.created event: %v", err)
	}
}
