package models

import (
	"time"
)

// Payment confirmation statuses. A confirmation is created in pending_review
// and moved exactly once to verified or rejected by a manager. Disputed is a
// manual override path and is never set by the API.
const (
	ConfirmationStatusPendingReview = "pending_review"
	ConfirmationStatusVerified      = "verified"
	ConfirmationStatusRejected      = "rejected"
	ConfirmationStatusDisputed      = "disputed"
)

// PaymentConfirmation represents the payment_confirmations table,
// one-to-one with a submitted payment.
type PaymentConfirmation struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	PaymentID  uint       `json:"payment_id" gorm:"column:payment_id;uniqueIndex"`
	Status     string     `json:"status" gorm:"column:status"`
	Notes      string     `json:"notes" gorm:"column:notes"`
	VerifiedBy *uint      `json:"verified_by" gorm:"column:verified_by"`
	VerifiedAt *time.Time `json:"verified_at" gorm:"column:verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for PaymentConfirmation
func (PaymentConfirmation) TableName() string {
	return "payment_confirmations"
}

// Resolved reports whether the confirmation has left pending_review
func (pc *PaymentConfirmation) Resolved() bool {
	return pc.Status != ConfirmationStatusPendingReview
}
