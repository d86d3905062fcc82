package payment

import "context"

// ServiceInterface defines the contract for payment operations
type ServiceInterface interface {
	CreatePayment(ctx context.Context, patientID string, req *CreatePaymentRequest, createdBy string) (*PaymentResponse, error)
	CreateBalancePayment(ctx context.Context, patientID string, req *CreateBalancePaymentRequest, createdBy string) (*PaymentResponse, float64, error)
	GetPayment(ctx context.Context, id string) (*PaymentResponse, error)
	ListPayments(ctx context.Context, patientID string) ([]PaymentResponse, error)
	GetPatientBalance(ctx context.Context, patientID string) (*PatientBalance, error)
}
