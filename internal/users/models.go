package users

import "github.com/dentchartzz/clinic-service/internal/appointment"

// Roles known to the clinic
const (
	RoleAdmin   = "admin"
	RoleDentist = "dentist"
	RoleStaff   = "staff"
)

var validRoles = map[string]bool{
	RoleAdmin:   true,
	RoleDentist: true,
	RoleStaff:   true,
}

// ValidRole reports whether r is a known role
func ValidRole(r string) bool {
	return validRoles[r]
}

// CreateUserRequest creates a user account with its profile
type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UserResponse represents a user profile in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

// UserListResponse wraps a list of users
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
	Total   int            `json:"total"`
}

// UserSuccessResponse wraps a single user
type UserSuccessResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

// ClinicTotals are the all-time clinic-wide counts on the admin dashboard
type ClinicTotals struct {
	Patients     int `json:"total_patients"`
	Appointments int `json:"total_appointments"`
	Treatments   int `json:"total_treatments"`
}

// DashboardResponse is the role-shaped daily summary. Dentists see only
// their own appointments plus their all-time patient count; admins see the
// whole day plus clinic totals.
type DashboardResponse struct {
	Success           bool                              `json:"success"`
	Role              string                            `json:"role"`
	Date              string                            `json:"date"`
	Appointments      []appointment.AppointmentResponse `json:"appointments"`
	TotalAppointments int                               `json:"total_appointments"`
	TotalPatients     int                               `json:"total_patients"`
	Totals            *ClinicTotals                     `json:"totals,omitempty"`
	MyPatients        *int                              `json:"my_patients,omitempty"`
}
