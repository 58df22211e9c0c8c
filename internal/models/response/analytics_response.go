package response

// Risk categories derived from a renter's payment history
const (
	RiskCategoryHigh   = "High Risk"
	RiskCategoryMedium = "Medium Risk"
	RiskCategoryLow    = "Low Risk"
)

// Payment behavior labels derived from the average settlement delay
const (
	BehaviorEarlyPayer       = "Early Payer"
	BehaviorOnTime           = "On Time"
	BehaviorOccasionallyLate = "Occasionally Late"
	BehaviorChronicallyLate  = "Chronically Late"
)

// RenterRiskResponse represents a renter's late-payment risk classification
type RenterRiskResponse struct {
	RenterID       uint    `json:"renter_id" example:"12"`
	RenterName     string  `json:"renter_name" example:"John Doe"`
	TotalPayments  int     `json:"total_payments" example:"10"`
	LatePayments   int     `json:"late_payments" example:"6"`
	LatePercentage float64 `json:"late_percentage" example:"60"`
	RiskCategory   string  `json:"risk_category" example:"High Risk"`
}

// PaymentBehaviorResponse represents a renter's predicted payment behavior
type PaymentBehaviorResponse struct {
	RenterID          uint    `json:"renter_id" example:"12"`
	RenterName        string  `json:"renter_name" example:"John Doe"`
	PaidPayments      int     `json:"paid_payments" example:"8"`
	AvgDaysDelay      float64 `json:"avg_days_delay" example:"4.5"`
	Behavior          string  `json:"behavior" example:"Occasionally Late"`
	RecommendedAction string  `json:"recommended_action" example:"Send payment reminders before the due date"`
}
