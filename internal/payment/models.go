package payment

// Payment methods
const (
	MethodCash      = "cash"
	MethodCard      = "card"
	MethodInsurance = "insurance"
	MethodOther     = "other"
)

var validMethods = map[string]bool{
	MethodCash:      true,
	MethodCard:      true,
	MethodInsurance: true,
	MethodOther:     true,
}

// ValidMethod reports whether m is a known payment method
func ValidMethod(m string) bool {
	return validMethods[m]
}

// CreatePaymentItemRequest is one line item created inline with a payment.
// Items are display and attribution only; they are never reconciled
// against the payment totals.
type CreatePaymentItemRequest struct {
	TreatmentID string  `json:"treatment_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CreatePaymentRequest records a payment against a patient
type CreatePaymentRequest struct {
	AppointmentID string                     `json:"appointment_id,omitempty"`
	PaymentDate   string                     `json:"payment_date,omitempty"`
	TotalAmount   float64                    `json:"total_amount"`
	AmountPaid    float64                    `json:"amount_paid"`
	PaymentMethod string                     `json:"payment_method"`
	Notes         string                     `json:"notes,omitempty"`
	Items         []CreatePaymentItemRequest `json:"items,omitempty"`
}

// CreateBalancePaymentRequest records a payment against an outstanding
// balance. The created row always has total_amount zero.
type CreateBalancePaymentRequest struct {
	AppointmentID string  `json:"appointment_id,omitempty"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes,omitempty"`
}

// PaymentItemResponse is one line item of a payment
type PaymentItemResponse struct {
	ID          string  `json:"id"`
	TreatmentID *string `json:"treatment_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PaymentResponse represents a payment in API responses.
// Balance is total_amount minus amount_paid and goes negative for
// balance-only rows. IsBalancePayment is derived, never stored.
type PaymentResponse struct {
	ID               string                `json:"id"`
	PatientID        string                `json:"patient_id"`
	PatientName      string                `json:"patient_name"`
	AppointmentID    *string               `json:"appointment_id,omitempty"`
	PaymentDate      string                `json:"payment_date"`
	TotalAmount      float64               `json:"total_amount"`
	AmountPaid       float64               `json:"amount_paid"`
	Balance          float64               `json:"balance"`
	IsBalancePayment bool                  `json:"is_balance_payment"`
	PaymentMethod    string                `json:"payment_method"`
	Notes            string                `json:"notes,omitempty"`
	CreatedBy        *string               `json:"created_by,omitempty"`
	CreatedAt        string                `json:"created_at"`
	Items            []PaymentItemResponse `json:"items,omitempty"`
}

// PatientBalance is the fresh aggregation of a patient's ledger
type PatientBalance struct {
	PatientID          string  `json:"patient_id"`
	TotalTreatmentCost float64 `json:"total_treatment_cost"`
	TotalPaid          float64 `json:"total_paid"`
	BalanceDue         float64 `json:"balance_due"`
}

// BalanceResponse wraps a patient balance
type BalanceResponse struct {
	Success bool            `json:"success"`
	Balance *PatientBalance `json:"balance"`
}

// PaymentListResponse wraps a patient's payments, newest first
type PaymentListResponse struct {
	Success  bool              `json:"success"`
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

// PaymentSuccessResponse wraps a single payment
type PaymentSuccessResponse struct {
	Success bool             `json:"success"`
	Payment *PaymentResponse `json:"payment"`
	// SuggestedAmount carries the pre-filled amount for balance payments
	SuggestedAmount *float64 `json:"suggested_amount,omitempty"`
}
