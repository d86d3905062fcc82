package patient

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const patientColumns = `id, name, age, gender, to_char(date_of_birth, 'YYYY-MM-DD'), phone, email, address, chief_complaint, medical_history, drug_allergies, previous_dental_work, created_at, updated_at`

func scanPatient(row interface{ Scan(...interface{}) error }) (*PatientResponse, error) {
	var patient PatientResponse
	var dob sql.NullString
	var email sql.NullString
	var chiefComplaint sql.NullString
	var medicalHistory sql.NullString
	var drugAllergies sql.NullString
	var previousDentalWork sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.Age,
		&patient.Gender,
		&dob,
		&patient.Phone,
		&email,
		&patient.Address,
		&chiefComplaint,
		&medicalHistory,
		&drugAllergies,
		&previousDentalWork,
		&patient.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		patient.DateOfBirth = &dob.String
	}
	if email.Valid {
		patient.Email = email.String
	}
	if chiefComplaint.Valid {
		patient.ChiefComplaint = chiefComplaint.String
	}
	if medicalHistory.Valid {
		patient.MedicalHistory = medicalHistory.String
	}
	if drugAllergies.Valid {
		patient.DrugAllergies = drugAllergies.String
	}
	if previousDentalWork.Valid {
		patient.PreviousDentalWork = previousDentalWork.String
	}
	if updatedAt.Valid {
		patient.UpdatedAt = &updatedAt.Time
	}

	return &patient, nil
}

func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	patientID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO clinic.patients
		(id, name, age, gender, date_of_birth, phone, email, address, chief_complaint, medical_history, drug_allergies, previous_dental_work, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::date, $6, NULLIF($7, ''), $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13)
		RETURNING ` + patientColumns

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query,
		patientID,
		req.Name,
		req.Age,
		req.Gender,
		req.DateOfBirth,
		req.Phone,
		req.Email,
		req.Address,
		req.ChiefComplaint,
		req.MedicalHistory,
		req.DrugAllergies,
		req.PreviousDentalWork,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	return patient, nil
}

// ListPatients returns patients ordered by creation time, newest first.
// A non-empty search matches name or phone (substring) or the exact id.
func (r *Repository) ListPatients(ctx context.Context, limit, offset int, search string) ([]PatientResponse, int, error) {
	baseWhere := ""
	args := []interface{}{}
	if search != "" {
		baseWhere = `WHERE name ILIKE $1 OR phone ILIKE $1 OR id::text = $2`
		args = append(args, "%"+search+"%", search)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clinic.patients %s`, baseWhere)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM clinic.patients
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, patientColumns, baseWhere, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []PatientResponse
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, total, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM clinic.patients WHERE id = $1`, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

func (r *Repository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Age != nil {
		addSet("age", *req.Age)
	}
	if req.Gender != nil {
		addSet("gender", *req.Gender)
	}
	if req.DateOfBirth != nil {
		setClauses = append(setClauses, fmt.Sprintf("date_of_birth = NULLIF($%d, '')::date", argIdx))
		args = append(args, *req.DateOfBirth)
		argIdx++
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.ChiefComplaint != nil {
		addSet("chief_complaint", *req.ChiefComplaint)
	}
	if req.MedicalHistory != nil {
		addSet("medical_history", *req.MedicalHistory)
	}
	if req.DrugAllergies != nil {
		addSet("drug_allergies", *req.DrugAllergies)
	}
	if req.PreviousDentalWork != nil {
		addSet("previous_dental_work", *req.PreviousDentalWork)
	}

	if len(setClauses) == 0 {
		return r.GetPatient(ctx, id)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE clinic.patients
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	return patient, nil
}

// DeletePatient removes a patient. Appointments, treatments and payments
// cascade at the database level.
func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinic.patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
