package service

import (
	"testing"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(t *testing.T) (PaymentService, *gorm.DB) {
	db := setupTestDB(t)
	paymentRepo := repository.NewPaymentRepository(db)
	tenancyRepo := repository.NewTenancyRepository(db)
	return NewPaymentService(paymentRepo, tenancyRepo, testLogger()), db
}

func TestSubmitPayment(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 9, Role: models.RoleManager}
	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}

	input := SubmitPaymentInput{
		ApartmentID: occupied.ID,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1200,
		Method:      "bank_transfer",
		Reference:   "TX1",
	}

	resp, err := svc.SubmitPayment(renterActor, input)
	require.NoError(t, err)

	assert.Equal(t, occupied.ID, resp.ApartmentID)
	assert.Equal(t, renter.ID, resp.RenterID)
	assert.Equal(t, "2024-01", resp.Month)
	assert.Equal(t, models.PaymentStatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)
	assert.Contains(t, resp.DocumentID, "pay-")

	require.NotNil(t, resp.Confirmation)
	assert.Equal(t, models.ConfirmationStatusPendingReview, resp.Confirmation.Status)

	// Due date is the month start plus the grace period
	assert.Equal(t, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), resp.DueDate)

	// Same apartment, different month is fine
	input.Month = mustMonth(t, "2024-02")
	input.Reference = "TX2"
	_, err = svc.SubmitPayment(renterActor, input)
	assert.NoError(t, err)

	// Second submission for the same month is rejected by the store
	input.Month = mustMonth(t, "2024-01")
	input.Reference = "TX3"
	_, err = svc.SubmitPayment(manager, input)
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestSubmitPaymentInsufficientAmount(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	_, err := svc.SubmitPayment(models.Actor{ID: renter.ID, Role: models.RoleRenter}, SubmitPaymentInput{
		ApartmentID: occupied.ID,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1199,
		Method:      "bank_transfer",
		Reference:   "TX1",
	})
	assert.ErrorIs(t, err, ErrInsufficientAmount)

	// Nothing is persisted on rejection
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubmitPaymentVacantApartment(t *testing.T) {
	svc, db := newPaymentService(t)
	_, _, _, vacant := seedTenancy(t, db)

	_, err := svc.SubmitPayment(models.Actor{ID: 1, Role: models.RoleRenter}, SubmitPaymentInput{
		ApartmentID: vacant.ID,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1500,
		Method:      "bank_transfer",
		Reference:   "TX1",
	})
	assert.ErrorIs(t, err, ErrApartmentVacant)
}

func TestSubmitPaymentUnknownApartment(t *testing.T) {
	svc, _ := newPaymentService(t)

	_, err := svc.SubmitPayment(models.Actor{ID: 1, Role: models.RoleRenter}, SubmitPaymentInput{
		ApartmentID: 999,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1200,
		Method:      "bank_transfer",
		Reference:   "TX1",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVerifyPayment(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}

	submitted, err := svc.SubmitPayment(models.Actor{ID: renter.ID, Role: models.RoleRenter}, SubmitPaymentInput{
		ApartmentID: occupied.ID,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1200,
		Method:      "bank_transfer",
		Reference:   "TX1",
	})
	require.NoError(t, err)

	verified, err := svc.VerifyPayment(manager, submitted.ID, models.ConfirmationStatusVerified, "matched bank statement")
	require.NoError(t, err)

	require.NotNil(t, verified.Confirmation)
	assert.Equal(t, models.ConfirmationStatusVerified, verified.Confirmation.Status)
	assert.Equal(t, "matched bank statement", verified.Confirmation.Notes)
	require.NotNil(t, verified.Confirmation.VerifiedBy)
	assert.Equal(t, manager.ID, *verified.Confirmation.VerifiedBy)
	assert.NotNil(t, verified.Confirmation.VerifiedAt)
}

func TestVerifyPaymentIsOneShot(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}

	submitted, err := svc.SubmitPayment(models.Actor{ID: renter.ID, Role: models.RoleRenter}, SubmitPaymentInput{
		ApartmentID: occupied.ID,
		Month:       mustMonth(t, "2024-01"),
		Amount:      1200,
		Method:      "bank_transfer",
		Reference:   "TX1",
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(manager, submitted.ID, models.ConfirmationStatusRejected, "amount mismatch")
	require.NoError(t, err)

	// A second decision, even the same one, is rejected
	_, err = svc.VerifyPayment(manager, submitted.ID, models.ConfirmationStatusRejected, "")
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	_, err = svc.VerifyPayment(manager, submitted.ID, models.ConfirmationStatusVerified, "")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyPaymentUnknownPayment(t *testing.T) {
	svc, _ := newPaymentService(t)

	_, err := svc.VerifyPayment(models.Actor{ID: 42, Role: models.RoleManager}, 999, models.ConfirmationStatusVerified, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetPaymentDerivesOverdue(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	month := mustMonth(t, "2024-01")
	payment := &models.Payment{
		DocumentID:  "pay-test",
		ApartmentID: occupied.ID,
		RenterID:    renter.ID,
		Year:        month.Year,
		Month:       month.Month,
		Amount:      1200,
		DueDate:     month.DueDate(),
		Status:      models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(payment).Error)

	resp, err := svc.GetPayment(payment.ID)
	require.NoError(t, err)

	// The stored row stays pending; the response reports overdue past the due date
	assert.Equal(t, models.PaymentStatusOverdue, resp.Status)

	var stored models.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestListPaymentsFilters(t *testing.T) {
	svc, db := newPaymentService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}
	for _, ref := range []string{"2024-01", "2024-02", "2024-03"} {
		_, err := svc.SubmitPayment(renterActor, SubmitPaymentInput{
			ApartmentID: occupied.ID,
			Month:       mustMonth(t, ref),
			Amount:      1200,
			Method:      "bank_transfer",
			Reference:   "TX-" + ref,
		})
		require.NoError(t, err)
	}

	all, total, err := svc.ListPayments(repository.PaymentFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	month := mustMonth(t, "2024-02")
	filtered, total, err := svc.ListPayments(repository.PaymentFilter{Month: &month}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2024-02", filtered[0].Month)

	paged, total, err := svc.ListPayments(repository.PaymentFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 1)
}
