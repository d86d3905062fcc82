package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const appointmentColumns = `
	a.id, a.patient_id, p.name, a.dentist_id, u.full_name,
	to_char(a.date, 'YYYY-MM-DD'), to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI'),
	a.status, a.notes, a.created_at, a.updated_at`

const appointmentFrom = `
	FROM clinic.appointments a
	JOIN clinic.patients p ON p.id = a.patient_id
	JOIN clinic.user_profiles u ON u.id = a.dentist_id`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*AppointmentResponse, error) {
	var appt AppointmentResponse
	var notes sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.PatientName,
		&appt.DentistID,
		&appt.DentistName,
		&appt.Date,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&notes,
		&appt.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		appt.Notes = notes.String
	}
	if updatedAt.Valid {
		appt.UpdatedAt = &updatedAt.Time
	}
	appt.Duration = DurationMinutes(appt.StartTime, appt.EndTime)

	return &appt, nil
}

func (r *Repository) queryAppointments(ctx context.Context, query string, args ...interface{}) ([]AppointmentResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []AppointmentResponse
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return appointments, nil
}

func (r *Repository) CreateAppointment(ctx context.Context, req CreateAppointmentRequest, endTime string) (*AppointmentResponse, error) {
	id := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO clinic.appointments
		(id, patient_id, dentist_id, date, start_time, end_time, status, notes, created_at)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, NULLIF($8, ''), $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		req.PatientID,
		req.DentistID,
		req.Date,
		req.StartTime,
		endTime,
		StatusScheduled,
		req.Notes,
		createdAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	return r.GetAppointment(ctx, id.String())
}

// ListAppointments returns appointments ordered by date and start time,
// optionally filtered by date, dentist and status.
func (r *Repository) ListAppointments(ctx context.Context, f Filters) ([]AppointmentResponse, error) {
	where := []string{}
	args := []interface{}{}

	if f.Date != "" {
		args = append(args, f.Date)
		where = append(where, fmt.Sprintf("a.date = $%d::date", len(args)))
	}
	if f.DentistID != "" {
		args = append(args, f.DentistID)
		where = append(where, fmt.Sprintf("a.dentist_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY a.date, a.start_time`,
		appointmentColumns, appointmentFrom, whereClause)

	return r.queryAppointments(ctx, query, args...)
}

// ListByDateRange returns all appointments with date in [from, to]
func (r *Repository) ListByDateRange(ctx context.Context, from, to string) ([]AppointmentResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.date BETWEEN $1::date AND $2::date
		ORDER BY a.date, a.start_time
	`, appointmentColumns, appointmentFrom)

	return r.queryAppointments(ctx, query, from, to)
}

func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.patient_id = $1
		ORDER BY a.date DESC, a.start_time DESC
	`, appointmentColumns, appointmentFrom)

	return r.queryAppointments(ctx, query, patientID)
}

// ListScheduledForDentist returns the scheduled appointments that can block
// slots for one dentist on one date, in storage order.
func (r *Repository) ListScheduledForDentist(ctx context.Context, dentistID, date string) ([]AppointmentResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.dentist_id = $1 AND a.date = $2::date AND a.status = $3
		ORDER BY a.created_at
	`, appointmentColumns, appointmentFrom)

	return r.queryAppointments(ctx, query, dentistID, date, StatusScheduled)
}

func (r *Repository) GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = $1`, appointmentColumns, appointmentFrom)

	appt, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appt, nil
}

// UpdateAppointment applies the set fields. endTime must be passed whenever
// the caller changed the start time or duration.
func (r *Repository) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest, endTime *string) (*AppointmentResponse, error) {
	setClauses := []string{}
	args := []interface{}{}

	addSet := func(clause string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf(clause, len(args)))
	}

	if req.PatientID != nil {
		addSet("patient_id = $%d", *req.PatientID)
	}
	if req.DentistID != nil {
		addSet("dentist_id = $%d", *req.DentistID)
	}
	if req.Date != nil {
		addSet("date = $%d::date", *req.Date)
	}
	if req.StartTime != nil {
		addSet("start_time = $%d::time", *req.StartTime)
	}
	if endTime != nil {
		addSet("end_time = $%d::time", *endTime)
	}
	if req.Notes != nil {
		addSet("notes = NULLIF($%d, '')", *req.Notes)
	}
	if req.Status != nil {
		addSet("status = $%d", *req.Status)
	}

	if len(setClauses) == 0 {
		return r.GetAppointment(ctx, id)
	}

	addSet("updated_at = $%d", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE clinic.appointments
		SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetAppointment(ctx, id)
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*AppointmentResponse, error) {
	query := `
		UPDATE clinic.appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetAppointment(ctx, id)
}
