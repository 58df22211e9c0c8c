package service

import (
	"errors"
	"fmt"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/models/response"
	"pms-be-svc/internal/repository"
	"pms-be-svc/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitPaymentInput carries the validated fields of a payment submission
type SubmitPaymentInput struct {
	ApartmentID uint
	Month       models.MonthKey
	Amount      int64
	Method      string
	Reference   string
}

// PaymentService enforces the rent payment state machine: a renter submits a
// payment for a billing month, a manager verifies or rejects it exactly once.
type PaymentService interface {
	SubmitPayment(actor models.Actor, input SubmitPaymentInput) (*response.PaymentResponse, error)
	VerifyPayment(actor models.Actor, paymentID uint, decision, notes string) (*response.PaymentResponse, error)
	GetPayment(id uint) (*response.PaymentResponse, error)
	ListPayments(filter repository.PaymentFilter, page, limit int) ([]*response.PaymentResponse, int64, error)
}

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo repository.PaymentRepository
	tenancyRepo repository.TenancyRepository
	logger      *logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, tenancyRepo repository.TenancyRepository, logger *logger.Logger) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		tenancyRepo: tenancyRepo,
		logger:      logger,
	}
}

// SubmitPayment records a rent payment for the apartment's billing month and
// opens a confirmation in pending_review. The apartment must have an active
// renter, the amount must cover the contracted rent and the (apartment, month)
// pair must not have a payment yet.
func (s *paymentService) SubmitPayment(actor models.Actor, input SubmitPaymentInput) (*response.PaymentResponse, error) {
	apartment, err := s.tenancyRepo.GetApartmentByID(input.ApartmentID)
	if err != nil {
		return nil, fmt.Errorf("apartment lookup: %w", err)
	}

	if !apartment.Occupied() {
		return nil, ErrApartmentVacant
	}

	if input.Amount < apartment.MonthlyRent {
		s.logger.WithFields(map[string]interface{}{
			"apartment_id": input.ApartmentID,
			"amount":       input.Amount,
			"rent":         apartment.MonthlyRent,
		}).Warn("Payment amount below contracted rent")
		return nil, ErrInsufficientAmount
	}

	now := time.Now()
	payment := &models.Payment{
		DocumentID:  "pay-" + uuid.New().String(),
		ApartmentID: apartment.ID,
		RenterID:    *apartment.RenterID,
		Year:        input.Month.Year,
		Month:       input.Month.Month,
		Amount:      input.Amount,
		// Due date is bookkeeping only and never gates submission
		DueDate:   input.Month.DueDate(),
		Status:    models.PaymentStatusPaid,
		Method:    input.Method,
		Reference: input.Reference,
		PaidAt:    &now,
	}
	confirmation := &models.PaymentConfirmation{
		Status: models.ConfirmationStatusPendingReview,
	}

	// The unique index on (apartment_id, year, month) is the real duplicate
	// guard; first writer wins under concurrent submissions
	if err := s.paymentRepo.CreatePaymentWithConfirmation(payment, confirmation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	payment.Confirmation = confirmation

	s.logger.WithFields(map[string]interface{}{
		"payment_id":   payment.ID,
		"apartment_id": apartment.ID,
		"renter_id":    payment.RenterID,
		"month":        input.Month.String(),
		"amount":       input.Amount,
		"actor_id":     actor.ID,
	}).Info("Payment submitted for review")

	return s.toPaymentResponse(payment, now), nil
}

// VerifyPayment resolves a pending confirmation into verified or rejected.
// The transition is one-shot: a confirmation that already left pending_review
// is rejected with ErrAlreadyVerified regardless of the decision value.
func (s *paymentService) VerifyPayment(actor models.Actor, paymentID uint, decision, notes string) (*response.PaymentResponse, error) {
	now := time.Now()

	rows, err := s.paymentRepo.ResolveConfirmation(paymentID, decision, notes, actor.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve confirmation: %w", err)
	}

	if rows == 0 {
		// Distinguish an unknown payment from one already resolved
		if _, err := s.paymentRepo.GetConfirmationByPaymentID(paymentID); err != nil {
			return nil, fmt.Errorf("confirmation lookup: %w", err)
		}
		return nil, ErrAlreadyVerified
	}

	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment lookup: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": paymentID,
		"decision":   decision,
		"verifier":   actor.ID,
	}).Info("Payment verification recorded")

	return s.toPaymentResponse(payment, now), nil
}

// GetPayment retrieves a payment with its read-time derived status
func (s *paymentService) GetPayment(id uint) (*response.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}

	return s.toPaymentResponse(payment, time.Now()), nil
}

// ListPayments retrieves payments with optional filters and pagination
func (s *paymentService) ListPayments(filter repository.PaymentFilter, page, limit int) ([]*response.PaymentResponse, int64, error) {
	payments, total, err := s.paymentRepo.ListPayments(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	responses := make([]*response.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, s.toPaymentResponse(payment, now))
	}

	return responses, total, nil
}

// toPaymentResponse maps a payment row onto its API shape with the status
// derived at the given time
func (s *paymentService) toPaymentResponse(payment *models.Payment, now time.Time) *response.PaymentResponse {
	resp := &response.PaymentResponse{
		ID:          payment.ID,
		DocumentID:  payment.DocumentID,
		ApartmentID: payment.ApartmentID,
		RenterID:    payment.RenterID,
		Month:       payment.MonthKey().String(),
		Amount:      payment.Amount,
		DueDate:     payment.DueDate,
		Status:      payment.DerivedStatus(now),
		Method:      payment.Method,
		Reference:   payment.Reference,
		PaidAt:      payment.PaidAt,
		CreatedAt:   payment.CreatedAt,
	}

	if payment.Confirmation != nil {
		resp.Confirmation = &response.PaymentConfirmationInfo{
			Status:     payment.Confirmation.Status,
			Notes:      payment.Confirmation.Notes,
			VerifiedBy: payment.Confirmation.VerifiedBy,
			VerifiedAt: payment.Confirmation.VerifiedAt,
		}
	}

	return resp
}
