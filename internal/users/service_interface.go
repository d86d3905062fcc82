package users

import "context"

// ServiceInterface defines the contract for user account operations
type ServiceInterface interface {
	CreateAccount(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, role string) ([]UserResponse, error)
	ListDentists(ctx context.Context) ([]UserResponse, error)
	Dashboard(ctx context.Context, userID, role string) (*DashboardResponse, error)
}
