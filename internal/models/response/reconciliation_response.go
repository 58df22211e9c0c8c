package response

import "time"

// Reconciliation classes: every apartment in the building falls into exactly
// one class for a given month.
const (
	ReconciliationClassVerified            = "verified"
	ReconciliationClassPendingVerification = "pending_verification"
	ReconciliationClassPending             = "pending"
	ReconciliationClassOverdue             = "overdue"
	ReconciliationClassNoPayment           = "no_payment"
)

// ApartmentReconciliationRow represents one apartment in the monthly reconciliation
type ApartmentReconciliationRow struct {
	ApartmentID        uint       `json:"apartment_id" example:"3"`
	UnitNumber         string     `json:"unit_number" example:"A-301"`
	RenterID           *uint      `json:"renter_id,omitempty" example:"12"`
	RenterName         string     `json:"renter_name,omitempty" example:"John Doe"`
	RentAmount         int64      `json:"rent_amount" example:"1200"`
	PaymentID          *uint      `json:"payment_id,omitempty" example:"57"`
	PaymentAmount      *int64     `json:"payment_amount,omitempty" example:"1200"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	ConfirmationStatus string     `json:"confirmation_status,omitempty" example:"pending_review"`
	Class              string     `json:"class" example:"verified"`
}

// MonthlyReconciliationResponse represents the monthly collection summary for a building
type MonthlyReconciliationResponse struct {
	BuildingID               uint                         `json:"building_id" example:"1"`
	Month                    string                       `json:"month" example:"2024-01"`
	VerifiedCount            int                          `json:"verified_count" example:"8"`
	PendingVerificationCount int                          `json:"pending_verification_count" example:"2"`
	PendingCount             int                          `json:"pending_count" example:"1"`
	OverdueCount             int                          `json:"overdue_count" example:"3"`
	NoPaymentCount           int                          `json:"no_payment_count" example:"4"`
	CollectedAmount          int64                        `json:"collected_amount" example:"9600"`
	ExpectedAmount           int64                        `json:"expected_amount" example:"16800"`
	CollectionRate           float64                      `json:"collection_rate" example:"57.1"`
	Apartments               []ApartmentReconciliationRow `json:"apartments"`
}
