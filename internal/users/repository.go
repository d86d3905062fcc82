package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const userColumns = `
	id, username, full_name, role, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), to_char(created_at, 'YYYY-MM-DD HH24:MI:SS')`

// Repository handles database operations for user profiles
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new users repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*UserResponse, error) {
	var u UserResponse
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.Email, &u.Phone, &u.Address, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user profile and returns its ID
func (r *Repository) CreateUser(ctx context.Context, req *CreateUserRequest) (string, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO clinic.user_profiles (id, username, full_name, role, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NOW())`

	_, err := r.db.ExecContext(ctx, query, id, req.Username, req.FullName, req.Role, req.Email, req.Phone, req.Address)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// GetUser returns one user profile by ID
func (r *Repository) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM clinic.user_profiles WHERE id = $1`, userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// ListUsers returns user profiles, optionally filtered by role
func (r *Repository) ListUsers(ctx context.Context, role string) ([]UserResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM clinic.user_profiles`, userColumns)
	args := []interface{}{}

	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []UserResponse
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return out, nil
}

// ClinicTotals returns the all-time clinic-wide counts
func (r *Repository) ClinicTotals(ctx context.Context) (*ClinicTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM clinic.patients),
			(SELECT COUNT(*) FROM clinic.appointments),
			(SELECT COUNT(*) FROM clinic.treatments)`

	var totals ClinicTotals
	err := r.db.QueryRowContext(ctx, query).Scan(&totals.Patients, &totals.Appointments, &totals.Treatments)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic totals: %w", err)
	}

	return &totals, nil
}

// CountPatientsByDentist returns how many distinct patients a dentist has
// ever had an appointment with
func (r *Repository) CountPatientsByDentist(ctx context.Context, dentistID string) (int, error) {
	query := `SELECT COUNT(DISTINCT patient_id) FROM clinic.appointments WHERE dentist_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, dentistID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count dentist patients: %w", err)
	}

	return count, nil
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
