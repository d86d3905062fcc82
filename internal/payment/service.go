package payment

import (
	"context"
	"log"
	"time"

	"github.com/dentchartzz/clinic-service/internal/messaging"
)

// Recorder reports payment metrics. A nil Recorder disables recording.
type Recorder interface {
	RecordPayment(ctx context.Context, operation string, amountPaid float64)
}

// Service handles payment business logic
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	recorder  Recorder
}

// NewService creates a new payment service
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, recorder Recorder) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		recorder:  recorder,
	}
}

const dateLayout = "2006-01-02"

func (s *Service) validate(req *CreatePaymentRequest) (string, error) {
	if !ValidMethod(req.PaymentMethod) {
		return "", ErrInvalidMethod
	}
	if req.TotalAmount < 0 || req.AmountPaid < 0 {
		return "", ErrNegativeAmount
	}

	paymentDate := req.PaymentDate
	if paymentDate == "" {
		paymentDate = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, paymentDate); err != nil {
		return "", ErrInvalidDate
	}

	return paymentDate, nil
}

func (s *Service) requirePatient(ctx context.Context, patientID string) error {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPatientNotFound
	}
	return nil
}

// CreatePayment records a payment with its line items
func (s *Service) CreatePayment(ctx context.Context, patientID string, req *CreatePaymentRequest, createdBy string) (*PaymentResponse, error) {
	paymentDate, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	id, err := s.repo.CreatePayment(ctx, patientID, req, paymentDate, createdBy)
	if err != nil {
		return nil, err
	}

	created, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.RecordPayment(ctx, "create", created.AmountPaid)
	}
	s.publishPaymentRecorded(ctx, created)

	return created, nil
}

// CreateBalancePayment records a payment against the patient's outstanding
// balance. The row always carries total_amount zero; an amount_paid of zero
// means "pay the suggested amount", which is the current balance due.
// The suggestion is returned alongside the payment.
func (s *Service) CreateBalancePayment(ctx context.Context, patientID string, req *CreateBalancePaymentRequest, createdBy string) (*PaymentResponse, float64, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, 0, err
	}

	balance, err := s.repo.GetPatientBalance(ctx, patientID)
	if err != nil {
		return nil, 0, err
	}
	suggested := balance.BalanceDue
	if suggested < 0 {
		suggested = 0
	}

	amountPaid := req.AmountPaid
	if amountPaid == 0 {
		amountPaid = suggested
	}

	payment, err := s.CreatePayment(ctx, patientID, &CreatePaymentRequest{
		AppointmentID: req.AppointmentID,
		PaymentDate:   req.PaymentDate,
		TotalAmount:   0,
		AmountPaid:    amountPaid,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}, createdBy)
	if err != nil {
		return nil, 0, err
	}

	return payment, suggested, nil
}

// GetPayment returns one payment with its line items
func (s *Service) GetPayment(ctx context.Context, id string) (*PaymentResponse, error) {
	payment, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	payment.Items = items

	return payment, nil
}

// ListPayments returns a patient's payments, newest first
func (s *Service) ListPayments(ctx context.Context, patientID string) ([]PaymentResponse, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	payments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []PaymentResponse{}
	}

	return payments, nil
}

// GetPatientBalance returns the fresh ledger aggregation for a patient
func (s *Service) GetPatientBalance(ctx context.Context, patientID string) (*PatientBalance, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	return s.repo.GetPatientBalance(ctx, patientID)
}

func (s *Service) publishPaymentRecorded(ctx context.Context, p *PaymentResponse) {
	event := messaging.PaymentRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPaymentRecorded),
		Data: messaging.PaymentRecordedData{
			PaymentID:        p.ID,
			PatientID:        p.PatientID,
			TotalAmount:      p.TotalAmount,
			AmountPaid:       p.AmountPaid,
			IsBalancePayment: p.IsBalancePayment,
			PaymentMethod:    p.PaymentMethod,
			PaymentDate:      p.PaymentDate,
			RecordedAt:       time.Now().UTC(),
		},
	}

	if err := s.publisher.Publish(ctx, messaging.EventPaymentRecorded, event); err != nil {
		log.Printf("Warning: failed to publish payment recorded event: %v", err)
	}
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
