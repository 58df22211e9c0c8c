package response

import "time"

// PaymentConfirmationInfo represents the confirmation attached to a payment
type PaymentConfirmationInfo struct {
	Status     string     `json:"status" example:"pending_review"`
	Notes      string     `json:"notes,omitempty"`
	VerifiedBy *uint      `json:"verified_by,omitempty" example:"2"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// PaymentResponse represents a payment with its read-time derived status
type PaymentResponse struct {
	ID           uint                     `json:"id" example:"57"`
	DocumentID   string                   `json:"document_id" example:"pay-9c2e4b"`
	ApartmentID  uint                     `json:"apartment_id" example:"3"`
	RenterID     uint                     `json:"renter_id" example:"12"`
	Month        string                   `json:"month" example:"2024-01"`
	Amount       int64                    `json:"amount" example:"1200"`
	DueDate      time.Time                `json:"due_date"`
	Status       string                   `json:"status" example:"paid"`
	Method       string                   `json:"method" example:"bank_transfer"`
	Reference    string                   `json:"reference" example:"TX1"`
	PaidAt       *time.Time               `json:"paid_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	Confirmation *PaymentConfirmationInfo `json:"confirmation,omitempty"`
}
