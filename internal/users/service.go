package users

import (
	"context"
	"strings"
	"time"

	"github.com/dentchartzz/clinic-service/internal/appointment"
)

// AppointmentSource lists appointments for the dashboard
type AppointmentSource interface {
	ListAppointments(ctx context.Context, f appointment.Filters) ([]appointment.AppointmentResponse, error)
}

// Service handles user account business logic
type Service struct {
	repo         RepositoryInterface
	appointments AppointmentSource
}

// NewService creates a new users service
func NewService(repo RepositoryInterface, appointments AppointmentSource) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
	}
}

// CreateAccount creates a user account with its profile. Usernames are
// stored trimmed and lowercased.
func (s *Service) CreateAccount(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" {
		return nil, ErrMissingUsername
	}
	if req.FullName == "" {
		return nil, ErrMissingFullName
	}
	if !ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	id, err := s.repo.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.repo.GetUser(ctx, id)
}

// GetUser returns one user profile
func (s *Service) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	return s.repo.GetUser(ctx, id)
}

// ListUsers returns user profiles, optionally filtered by role
func (s *Service) ListUsers(ctx context.Context, role string) ([]UserResponse, error) {
	if role != "" && !ValidRole(role) {
		return nil, ErrInvalidRole
	}

	out, err := s.repo.ListUsers(ctx, role)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []UserResponse{}
	}

	return out, nil
}

// ListDentists returns the dentist profiles that appointments can be
// scheduled with
func (s *Service) ListDentists(ctx context.Context) ([]UserResponse, error) {
	return s.ListUsers(ctx, RoleDentist)
}

// Dashboard builds the daily summary for a user. Dentists see their own
// schedule plus their all-time patient count; admins see the whole day plus
// clinic-wide totals.
func (s *Service) Dashboard(ctx context.Context, userID, role string) (*DashboardResponse, error) {
	today := time.Now().Format("2006-01-02")

	filters := appointment.Filters{Date: today}
	if role == RoleDentist {
		filters.DentistID = userID
	}

	appts, err := s.appointments.ListAppointments(ctx, filters)
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []appointment.AppointmentResponse{}
	}

	patients := make(map[string]bool)
	for _, a := range appts {
		patients[a.PatientID] = true
	}

	resp := &DashboardResponse{
		Success:           true,
		Role:              role,
		Date:              today,
		Appointments:      appts,
		TotalAppointments: len(appts),
		TotalPatients:     len(patients),
	}

	switch role {
	case RoleAdmin:
		totals, err := s.repo.ClinicTotals(ctx)
		if err != nil {
			return nil, err
		}
		resp.Totals = totals
	case RoleDentist:
		count, err := s.repo.CountPatientsByDentist(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.MyPatients = &count
	}

	return resp, nil
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
