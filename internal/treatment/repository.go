package treatment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dentchartzz/clinic-service/internal/tooth"
)

const treatmentColumns = `
	t.id, t.patient_id, p.name, t.tooth_id, te.number, te.name,
	t.condition_id, c.name, t.appointment_id, to_char(a.date, 'YYYY-MM-DD'),
	COALESCE(t.description, ''), t.status, t.cost,
	to_char(t.created_at, 'YYYY-MM-DD HH24:MI:SS'),
	to_char(t.updated_at, 'YYYY-MM-DD HH24:MI:SS')`

const treatmentTables = `
	clinic.treatments t
	JOIN clinic.patients p ON p.id = t.patient_id
	JOIN clinic.teeth te ON te.id = t.tooth_id
	JOIN clinic.tooth_conditions c ON c.id = t.condition_id
	LEFT JOIN clinic.appointments a ON a.id = t.appointment_id`

// Repository handles database operations for treatments and their history
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new treatment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanTreatment(row interface{ Scan(...interface{}) error }) (*TreatmentResponse, error) {
	var t TreatmentResponse
	var appointmentID, appointmentDate, updatedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.PatientID, &t.PatientName, &t.ToothID, &t.ToothNumber, &t.ToothName,
		&t.ConditionID, &t.ConditionName, &appointmentID, &appointmentDate,
		&t.Description, &t.Status, &t.Cost, &t.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentID.Valid {
		t.AppointmentID = &appointmentID.String
	}
	if appointmentDate.Valid {
		t.AppointmentDate = &appointmentDate.String
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.String
	}
	t.StatusDisplay = StatusDisplay(t.Status)

	return &t, nil
}

// CreateTreatment inserts one treatment row and returns its ID
func (r *Repository) CreateTreatment(ctx context.Context, patientID, toothID, conditionID string, appointmentID *string, description, status string, cost float64) (string, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO clinic.treatments (id, patient_id, tooth_id, condition_id, appointment_id, description, status, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NOW())`

	_, err := r.db.ExecContext(ctx, query, id, patientID, toothID, conditionID, appointmentID, description, status, cost)
	if err != nil {
		return "", fmt.Errorf("failed to create treatment: %w", err)
	}

	return id, nil
}

// GetTreatment returns one treatment by ID
func (r *Repository) GetTreatment(ctx context.Context, id string) (*TreatmentResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE t.id = $1`, treatmentColumns, treatmentTables)

	t, err := scanTreatment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}

	return t, nil
}

// ListByTooth returns treatments for one tooth, newest first.
// When patientID is non-empty only that patient's treatments are returned.
func (r *Repository) ListByTooth(ctx context.Context, toothID, patientID string) ([]TreatmentResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE t.tooth_id = $1`, treatmentColumns, treatmentTables)
	args := []interface{}{toothID}

	if patientID != "" {
		query += ` AND t.patient_id = $2`
		args = append(args, patientID)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tooth treatments: %w", err)
	}
	defer rows.Close()

	var treatments []TreatmentResponse
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treatment: %w", err)
		}
		treatments = append(treatments, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treatments: %w", err)
	}

	return treatments, nil
}

// UpdateTreatment applies a partial update. Nil fields stay unchanged.
// An appointmentID pointing to an empty string clears the link.
func (r *Repository) UpdateTreatment(ctx context.Context, id string, status, description *string, cost *float64, appointmentID *string) error {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *status)
		argIdx++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = NULLIF($%d, '')", argIdx))
		args = append(args, *description)
		argIdx++
	}
	if cost != nil {
		setClauses = append(setClauses, fmt.Sprintf("cost = $%d", argIdx))
		args = append(args, *cost)
		argIdx++
	}
	if appointmentID != nil {
		setClauses = append(setClauses, fmt.Sprintf("appointment_id = NULLIF($%d, '')::uuid", argIdx))
		args = append(args, *appointmentID)
		argIdx++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE clinic.treatments SET %s WHERE id = $%d", joinClauses(setClauses), argIdx)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update treatment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func joinClauses(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// HistoryRecord is the input for one status history row
type HistoryRecord struct {
	TreatmentID    string
	Status         string
	PreviousStatus *string
	AppointmentID  *string
	DentistID      *string
	Notes          string
}

// AddHistory appends one history row for a treatment
func (r *Repository) AddHistory(ctx context.Context, record *HistoryRecord) error {
	query := `
		INSERT INTO clinic.treatment_history (id, treatment_id, status, previous_status, appointment_id, dentist_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NOW())`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(), record.TreatmentID, record.Status, record.PreviousStatus,
		record.AppointmentID, record.DentistID, record.Notes)
	if err != nil {
		return fmt.Errorf("failed to add treatment history: %w", err)
	}

	return nil
}

// ListHistory returns a treatment's history rows, newest first
func (r *Repository) ListHistory(ctx context.Context, treatmentID string) ([]HistoryEntry, error) {
	query := `
		SELECT h.id, h.treatment_id, h.status, h.previous_status,
			h.appointment_id, to_char(a.date, 'YYYY-MM-DD'),
			h.dentist_id, u.full_name, COALESCE(h.notes, ''),
			to_char(h.created_at, 'YYYY-MM-DD HH24:MI:SS')
		FROM clinic.treatment_history h
		LEFT JOIN clinic.appointments a ON a.id = h.appointment_id
		LEFT JOIN clinic.user_profiles u ON u.id = h.dentist_id
		WHERE h.treatment_id = $1
		ORDER BY h.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, treatmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment history: %w", err)
	}
	defer rows.Close()

	var history []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		var previousStatus, appointmentID, appointmentDate, dentistID, dentistName sql.NullString

		err := rows.Scan(&h.ID, &h.TreatmentID, &h.Status, &previousStatus,
			&appointmentID, &appointmentDate, &dentistID, &dentistName,
			&h.Notes, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		if previousStatus.Valid {
			h.PreviousStatus = &previousStatus.String
		}
		if appointmentID.Valid {
			h.AppointmentID = &appointmentID.String
		}
		if appointmentDate.Valid {
			h.AppointmentDate = &appointmentDate.String
		}
		if dentistID.Valid {
			h.DentistID = &dentistID.String
		}
		if dentistName.Valid {
			h.DentistName = &dentistName.String
		}
		h.StatusDisplay = StatusDisplay(h.Status)

		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return history, nil
}

// CountsByTooth aggregates a patient's treatments per tooth by status.
// When appointmentID is non-empty only that appointment's treatments count.
func (r *Repository) CountsByTooth(ctx context.Context, patientID, appointmentID string) (map[string]tooth.TreatmentCounts, error) {
	query := `
		SELECT tooth_id, status, COUNT(*)
		FROM clinic.treatments
		WHERE patient_id = $1`
	args := []interface{}{patientID}

	if appointmentID != "" {
		query += ` AND appointment_id = $2`
		args = append(args, appointmentID)
	}
	query += ` GROUP BY tooth_id, status`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate treatments by tooth: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]tooth.TreatmentCounts)
	for rows.Next() {
		var toothID, status string
		var n int
		if err := rows.Scan(&toothID, &status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan treatment aggregate: %w", err)
		}

		c := counts[toothID]
		c.Total += n
		switch status {
		case StatusPlanned:
			c.Planned += n
		case StatusInProgress:
			c.InProgress += n
		case StatusCompleted:
			c.Completed += n
		case StatusCancelled:
			c.Cancelled += n
		}
		counts[toothID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treatment aggregates: %w", err)
	}

	return counts, nil
}

// Ensure Repository implements RepositoryInterface and the chart aggregate
var (
	_ RepositoryInterface  = (*Repository)(nil)
	_ tooth.TreatmentStats = (*Repository)(nil)
)
