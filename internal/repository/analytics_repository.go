package repository

import (
	"time"

	"pms-be-svc/internal/models"

	"gorm.io/gorm"
)

// ReconciliationRow is the raw join of an apartment with its payment and
// confirmation for one billing month. Classification happens in the service.
type ReconciliationRow struct {
	ApartmentID        uint       `json:"apartment_id"`
	UnitNumber         string     `json:"unit_number"`
	RenterID           *uint      `json:"renter_id"`
	RenterName         string     `json:"renter_name"`
	MonthlyRent        int64      `json:"monthly_rent"`
	PaymentID          *uint      `json:"payment_id"`
	Amount             *int64     `json:"amount"`
	PaymentStatus      string     `json:"payment_status"`
	DueDate            *time.Time `json:"due_date"`
	PaidAt             *time.Time `json:"paid_at"`
	ConfirmationStatus string     `json:"confirmation_status"`
}

// RenterPaymentRow is one payment in a renter's history, used for risk and
// behavior classification.
type RenterPaymentRow struct {
	RenterID   uint       `json:"renter_id"`
	RenterName string     `json:"renter_name"`
	DueDate    time.Time  `json:"due_date"`
	PaidAt     *time.Time `json:"paid_at"`
}

// AnalyticsRepository defines read-only access over the payment and
// confirmation tables for reporting queries
type AnalyticsRepository interface {
	GetReconciliationRows(buildingID uint, month models.MonthKey) ([]*ReconciliationRow, error)
	GetRenterPaymentHistory() ([]*RenterPaymentRow, error)
}

// analyticsRepository implements AnalyticsRepository
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// GetReconciliationRows joins every apartment in the building with its
// payment and confirmation for the month. Vacant apartments and apartments
// without a payment row come back with NULL payment columns.
func (r *analyticsRepository) GetReconciliationRows(buildingID uint, month models.MonthKey) ([]*ReconciliationRow, error) {
	var rows []*ReconciliationRow

	query := `
		SELECT
			a.id AS apartment_id,
			a.unit_number,
			a.renter_id,
			COALESCE(rn.full_name, '') AS renter_name,
			a.monthly_rent,
			p.id AS payment_id,
			p.amount,
			COALESCE(p.status, '') AS payment_status,
			p.due_date,
			p.paid_at,
			COALESCE(pc.status, '') AS confirmation_status
		FROM apartments a
		LEFT JOIN renters rn ON rn.id = a.renter_id
		LEFT JOIN payments p ON p.apartment_id = a.id AND p.year = ? AND p.month = ?
		LEFT JOIN payment_confirmations pc ON pc.payment_id = p.id
		WHERE a.building_id = ?
		ORDER BY a.unit_number
	`

	err := r.db.Raw(query, month.Year, month.Month, buildingID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetRenterPaymentHistory returns every payment row joined with its renter,
// ordered by renter and billing month
func (r *analyticsRepository) GetRenterPaymentHistory() ([]*RenterPaymentRow, error) {
	var rows []*RenterPaymentRow

	query := `
		SELECT
			p.renter_id,
			COALESCE(rn.full_name, '') AS renter_name,
			p.due_date,
			p.paid_at
		FROM payments p
		LEFT JOIN renters rn ON rn.id = p.renter_id
		ORDER BY p.renter_id, p.year, p.month
	`

	err := r.db.Raw(query).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
