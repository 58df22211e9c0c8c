package repository

import (
	"time"

	"pms-be-svc/internal/models"

	"gorm.io/gorm"
)

// PaymentFilter holds optional filters for payment listing
type PaymentFilter struct {
	ApartmentID *uint
	RenterID    *uint
	Month       *models.MonthKey
	Status      string
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	CreatePaymentWithConfirmation(payment *models.Payment, confirmation *models.PaymentConfirmation) error
	GetPaymentByID(id uint) (*models.Payment, error)
	ListPayments(filter PaymentFilter, page, limit int) ([]*models.Payment, int64, error)
	GetConfirmationByPaymentID(paymentID uint) (*models.PaymentConfirmation, error)
	ResolveConfirmation(paymentID uint, decision, notes string, verifierID uint, at time.Time) (int64, error)
	CountOverdue(now time.Time) (int64, int64, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// CreatePaymentWithConfirmation inserts the payment row and its confirmation
// in one transaction, so a failed confirmation insert never leaves a payment
// behind. The unique index on (apartment_id, year, month) serializes
// concurrent submissions: the second writer gets gorm.ErrDuplicatedKey.
func (r *paymentRepository) CreatePaymentWithConfirmation(payment *models.Payment, confirmation *models.PaymentConfirmation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		confirmation.PaymentID = payment.ID
		if err := tx.Create(confirmation).Error; err != nil {
			return err
		}

		return nil
	})
}

// GetPaymentByID retrieves a payment with its confirmation
func (r *paymentRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment

	err := r.db.Preload("Confirmation").Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// ListPayments retrieves payments with optional filters and pagination
func (r *paymentRepository) ListPayments(filter PaymentFilter, page, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.Model(&models.Payment{})
	if filter.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.RenterID != nil {
		query = query.Where("renter_id = ?", *filter.RenterID)
	}
	if filter.Month != nil {
		query = query.Where("year = ? AND month = ?", filter.Month.Year, filter.Month.Month)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Confirmation").
		Order("year DESC, month DESC, apartment_id").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// GetConfirmationByPaymentID retrieves the confirmation linked to a payment
func (r *paymentRepository) GetConfirmationByPaymentID(paymentID uint) (*models.PaymentConfirmation, error) {
	var confirmation models.PaymentConfirmation

	err := r.db.Where("payment_id = ?", paymentID).First(&confirmation).Error
	if err != nil {
		return nil, err
	}

	return &confirmation, nil
}

// ResolveConfirmation moves a confirmation out of pending_review with
// compare-and-set semantics: the guard on the current status makes the write
// a no-op when another verification already landed, and the caller decides
// from the affected row count. Returns the number of rows updated.
func (r *paymentRepository) ResolveConfirmation(paymentID uint, decision, notes string, verifierID uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.PaymentConfirmation{}).
		Where("payment_id = ? AND status = ?", paymentID, models.ConfirmationStatusPendingReview).
		Updates(map[string]interface{}{
			"status":      decision,
			"notes":       notes,
			"verified_by": verifierID,
			"verified_at": at,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// CountOverdue returns the number and total amount of pending payments past
// their due date at the given time. Overdue is read-time state and is never
// written back to the rows.
func (r *paymentRepository) CountOverdue(now time.Time) (int64, int64, error) {
	type overdueRow struct {
		Count int64
		Total int64
	}
	var row overdueRow

	err := r.db.Model(&models.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, now).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Count, row.Total, nil
}
