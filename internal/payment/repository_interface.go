package payment

import "context"

// RepositoryInterface defines the contract for payment data access
type RepositoryInterface interface {
	CreatePayment(ctx context.Context, patientID string, req *CreatePaymentRequest, paymentDate, createdBy string) (string, error)
	GetPayment(ctx context.Context, id string) (*PaymentResponse, error)
	ListItems(ctx context.Context, paymentID string) ([]PaymentItemResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]PaymentResponse, error)
	GetPatientBalance(ctx context.Context, patientID string) (*PatientBalance, error)
	PatientExists(ctx context.Context, id string) (bool, error)
}
