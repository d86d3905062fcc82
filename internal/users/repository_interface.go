package users

import "context"

// RepositoryInterface defines the contract for user profile data access
type RepositoryInterface interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (string, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, role string) ([]UserResponse, error)
	ClinicTotals(ctx context.Context) (*ClinicTotals, error)
	CountPatientsByDentist(ctx context.Context, dentistID string) (int, error)
}
