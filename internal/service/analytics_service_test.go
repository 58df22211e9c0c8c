package service

import (
	"testing"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/models/response"
	"pms-be-svc/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnalyticsService(t *testing.T) (AnalyticsService, *gorm.DB) {
	db := setupTestDB(t)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	tenancyRepo := repository.NewTenancyRepository(db)
	return NewAnalyticsService(analyticsRepo, tenancyRepo, testLogger()), db
}

// seedPayment inserts a payment with its confirmation directly
func seedPayment(t *testing.T, db *gorm.DB, apartmentID, renterID uint, month models.MonthKey, amount int64, status, confirmationStatus string, paidAt *time.Time) {
	payment := &models.Payment{
		DocumentID:  "pay-seed-" + month.String(),
		ApartmentID: apartmentID,
		RenterID:    renterID,
		Year:        month.Year,
		Month:       month.Month,
		Amount:      amount,
		DueDate:     month.DueDate(),
		Status:      status,
		PaidAt:      paidAt,
	}
	require.NoError(t, db.Create(payment).Error)

	if confirmationStatus != "" {
		require.NoError(t, db.Create(&models.PaymentConfirmation{
			PaymentID: payment.ID,
			Status:    confirmationStatus,
		}).Error)
	}
}

func TestMonthlyReconciliation(t *testing.T) {
	svc, db := newAnalyticsService(t)
	building, renter, occupied, _ := seedTenancy(t, db)

	month := mustMonth(t, "2024-01")
	paidAt := month.Start().AddDate(0, 0, 2)
	seedPayment(t, db, occupied.ID, renter.ID, month, 1200, models.PaymentStatusPaid, models.ConfirmationStatusVerified, &paidAt)

	now := month.DueDate().AddDate(0, 0, 10)
	result, err := svc.MonthlyReconciliation(building.ID, month, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-01", result.Month)
	assert.Equal(t, 1, result.VerifiedCount)
	// The vacant apartment reports no_payment
	assert.Equal(t, 1, result.NoPaymentCount)
	assert.Equal(t, 0, result.OverdueCount)

	// Expected only counts occupied apartments; collected only verified payments
	assert.Equal(t, int64(1200), result.ExpectedAmount)
	assert.Equal(t, int64(1200), result.CollectedAmount)
	assert.Equal(t, 100.0, result.CollectionRate)

	require.Len(t, result.Apartments, 2)
	classes := map[string]string{}
	for _, row := range result.Apartments {
		classes[row.UnitNumber] = row.Class
	}
	assert.Equal(t, response.ReconciliationClassVerified, classes["A-101"])
	assert.Equal(t, response.ReconciliationClassNoPayment, classes["A-102"])
}

func TestMonthlyReconciliationClasses(t *testing.T) {
	svc, db := newAnalyticsService(t)
	building, renter, _, _ := seedTenancy(t, db)

	// Two more occupied units in the same building
	unitB := &models.Apartment{BuildingID: building.ID, UnitNumber: "B-201", MonthlyRent: 1000, RenterID: &renter.ID}
	unitC := &models.Apartment{BuildingID: building.ID, UnitNumber: "B-202", MonthlyRent: 1000, RenterID: &renter.ID}
	require.NoError(t, db.Create(unitB).Error)
	require.NoError(t, db.Create(unitC).Error)

	month := mustMonth(t, "2024-01")
	paidAt := month.Start().AddDate(0, 0, 1)

	// Awaiting verification on one unit, pending payment on another
	seedPayment(t, db, unitB.ID, renter.ID, month, 1000, models.PaymentStatusPaid, models.ConfirmationStatusPendingReview, &paidAt)
	seedPayment(t, db, unitC.ID, renter.ID, month, 1000, models.PaymentStatusPending, "", nil)

	beforeDue := month.Start().AddDate(0, 0, 3)
	result, err := svc.MonthlyReconciliation(building.ID, month, beforeDue)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PendingVerificationCount)
	assert.Equal(t, 1, result.PendingCount)
	assert.Equal(t, 0, result.OverdueCount)

	// The same pending payment becomes overdue once the clock passes the due date
	afterDue := month.DueDate().AddDate(0, 0, 1)
	result, err = svc.MonthlyReconciliation(building.ID, month, afterDue)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PendingVerificationCount)
	assert.Equal(t, 0, result.PendingCount)
	assert.Equal(t, 1, result.OverdueCount)
}

func TestMonthlyReconciliationUnknownBuilding(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	_, err := svc.MonthlyReconciliation(999, mustMonth(t, "2024-01"), time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCollectionRate(t *testing.T) {
	assert.Equal(t, 0.0, collectionRate(0, 0))
	assert.Equal(t, 0.0, collectionRate(500, 0))
	assert.Equal(t, 50.0, collectionRate(600, 1200))
	assert.Equal(t, 57.1, collectionRate(9600, 16800))
}

func TestRiskClassification(t *testing.T) {
	svc, db := newAnalyticsService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	// 6 late out of 10 payments
	for i := 1; i <= 10; i++ {
		month := models.MonthKey{Year: 2023, Month: i}
		paidAt := month.DueDate().AddDate(0, 0, -1)
		if i <= 6 {
			paidAt = month.DueDate().AddDate(0, 0, 3)
		}
		seedPayment(t, db, occupied.ID, renter.ID, month, 1200, models.PaymentStatusPaid, models.ConfirmationStatusVerified, &paidAt)
	}

	rows, err := svc.RiskClassification()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, renter.ID, row.RenterID)
	assert.Equal(t, 10, row.TotalPayments)
	assert.Equal(t, 6, row.LatePayments)
	assert.Equal(t, 60.0, row.LatePercentage)
	assert.Equal(t, response.RiskCategoryHigh, row.RiskCategory)
}

func TestRiskClassificationExcludesRentersWithoutHistory(t *testing.T) {
	svc, db := newAnalyticsService(t)
	seedTenancy(t, db)

	rows, err := svc.RiskClassification()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRiskCategoryBoundaries(t *testing.T) {
	assert.Equal(t, response.RiskCategoryLow, riskCategory(0))
	assert.Equal(t, response.RiskCategoryLow, riskCategory(20))
	assert.Equal(t, response.RiskCategoryMedium, riskCategory(20.1))
	assert.Equal(t, response.RiskCategoryMedium, riskCategory(50))
	assert.Equal(t, response.RiskCategoryHigh, riskCategory(50.1))
}

func TestPaymentBehavior(t *testing.T) {
	svc, db := newAnalyticsService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	// Consistently one day early: the mean delay is negative
	for i := 1; i <= 4; i++ {
		month := models.MonthKey{Year: 2023, Month: i}
		paidAt := month.DueDate().AddDate(0, 0, -1)
		seedPayment(t, db, occupied.ID, renter.ID, month, 1200, models.PaymentStatusPaid, models.ConfirmationStatusVerified, &paidAt)
	}

	// An unpaid month is excluded from the behavior average
	seedPayment(t, db, occupied.ID, renter.ID, models.MonthKey{Year: 2023, Month: 5}, 1200, models.PaymentStatusPending, "", nil)

	rows, err := svc.PaymentBehavior()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 4, row.PaidPayments)
	assert.Equal(t, -1.0, row.AvgDaysDelay)
	assert.Equal(t, response.BehaviorEarlyPayer, row.Behavior)
	assert.NotEmpty(t, row.RecommendedAction)
}

func TestBehaviorBucketBoundaries(t *testing.T) {
	cases := []struct {
		avgDays  float64
		expected string
	}{
		{-3, response.BehaviorEarlyPayer},
		{0, response.BehaviorOnTime},
		{2, response.BehaviorOnTime},
		{2.5, response.BehaviorOccasionallyLate},
		{10, response.BehaviorOccasionallyLate},
		{10.5, response.BehaviorChronicallyLate},
	}

	for _, tc := range cases {
		behavior, action := behaviorBucket(tc.avgDays)
		assert.Equal(t, tc.expected, behavior, "avg %v days", tc.avgDays)
		assert.NotEmpty(t, action)
	}
}

func TestExportReconciliationToExcel(t *testing.T) {
	svc, db := newAnalyticsService(t)
	building, renter, occupied, _ := seedTenancy(t, db)

	month := mustMonth(t, "2024-01")
	paidAt := month.Start().AddDate(0, 0, 2)
	seedPayment(t, db, occupied.ID, renter.ID, month, 1200, models.PaymentStatusPaid, models.ConfirmationStatusVerified, &paidAt)

	content, filename, err := svc.ExportReconciliationToExcel(building.ID, month, time.Now())
	require.NoError(t, err)

	assert.NotEmpty(t, content)
	assert.Contains(t, filename, "reconciliation_")
	assert.Contains(t, filename, "2024-01")
	assert.Contains(t, filename, ".xlsx")
}
