package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const paymentColumns = `
	p.id, p.patient_id, pt.name, p.appointment_id,
	to_char(p.payment_date, 'YYYY-MM-DD'),
	p.total_amount, p.amount_paid, p.payment_method,
	COALESCE(p.notes, ''), p.created_by,
	to_char(p.created_at, 'YYYY-MM-DD HH24:MI:SS')`

const paymentTables = `
	clinic.payments p
	JOIN clinic.patients pt ON pt.id = p.patient_id`

// Repository handles database operations for payments
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func scanPayment(row interface{ Scan(...interface{}) error }) (*PaymentResponse, error) {
	var p PaymentResponse
	var appointmentID, createdBy sql.NullString

	err := row.Scan(
		&p.ID, &p.PatientID, &p.PatientName, &appointmentID,
		&p.PaymentDate, &p.TotalAmount, &p.AmountPaid, &p.PaymentMethod,
		&p.Notes, &createdBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentID.Valid {
		p.AppointmentID = &appointmentID.String
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.String
	}
	p.Balance = p.TotalAmount - p.AmountPaid
	p.IsBalancePayment = p.TotalAmount == 0

	return &p, nil
}

// CreatePayment inserts a payment and its line items in one transaction
// and returns the payment ID
func (r *Repository) CreatePayment(ctx context.Context, patientID string, req *CreatePaymentRequest, paymentDate, createdBy string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()

	query := `
		INSERT INTO clinic.payments (id, patient_id, appointment_id, payment_date, total_amount, amount_paid, payment_method, notes, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4::date, $5, $6, $7, NULLIF($8, ''), NULLIF($9, '')::uuid, NOW())`

	_, err = tx.ExecContext(ctx, query, id, patientID, req.AppointmentID, paymentDate,
		req.TotalAmount, req.AmountPaid, req.PaymentMethod, req.Notes, createdBy)
	if err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}

	itemQuery := `
		INSERT INTO clinic.payment_items (id, payment_id, treatment_id, description, amount)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5)`

	for _, item := range req.Items {
		_, err = tx.ExecContext(ctx, itemQuery, uuid.New().String(), id, item.TreatmentID, item.Description, item.Amount)
		if err != nil {
			return "", fmt.Errorf("failed to create payment item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit payment: %w", err)
	}

	return id, nil
}

// GetPayment returns one payment by ID, without items
func (r *Repository) GetPayment(ctx context.Context, id string) (*PaymentResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE p.id = $1`, paymentColumns, paymentTables)

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// ListItems returns a payment's line items
func (r *Repository) ListItems(ctx context.Context, paymentID string) ([]PaymentItemResponse, error) {
	query := `
		SELECT id, treatment_id, description, amount
		FROM clinic.payment_items
		WHERE payment_id = $1
		ORDER BY description`

	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment items: %w", err)
	}
	defer rows.Close()

	var items []PaymentItemResponse
	for rows.Next() {
		var item PaymentItemResponse
		var treatmentID sql.NullString
		if err := rows.Scan(&item.ID, &treatmentID, &item.Description, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment item: %w", err)
		}
		if treatmentID.Valid {
			item.TreatmentID = &treatmentID.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment items: %w", err)
	}

	return items, nil
}

// ListByPatient returns a patient's payments, newest payment date first
func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]PaymentResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE p.patient_id = $1 ORDER BY p.payment_date DESC, p.created_at DESC`, paymentColumns, paymentTables)

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []PaymentResponse
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

// GetPatientBalance aggregates a patient's payment ledger
func (r *Repository) GetPatientBalance(ctx context.Context, patientID string) (*PatientBalance, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(amount_paid), 0)
		FROM clinic.payments
		WHERE patient_id = $1`

	balance := PatientBalance{PatientID: patientID}
	err := r.db.QueryRowContext(ctx, query, patientID).Scan(&balance.TotalTreatmentCost, &balance.TotalPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate patient balance: %w", err)
	}
	balance.BalanceDue = balance.TotalTreatmentCost - balance.TotalPaid

	return &balance, nil
}

// PatientExists reports whether a patient row exists
func (r *Repository) PatientExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM clinic.patients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check patient: %w", err)
	}
	return exists, nil
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
