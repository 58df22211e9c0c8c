package models

import (
	"time"
)

// Payment statuses stored on the row. Overdue is never stored: it is derived
// at read time from the due date, see DerivedStatus.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Payment represents the payments table. The composite unique index on
// (apartment_id, year, month) makes the store reject a second submission for
// the same apartment and billing month, so duplicate detection does not rely
// on engine-side locking.
type Payment struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	DocumentID  string     `json:"document_id" gorm:"column:document_id"`
	ApartmentID uint       `json:"apartment_id" gorm:"column:apartment_id;uniqueIndex:idx_payments_apartment_period"`
	RenterID    uint       `json:"renter_id" gorm:"column:renter_id;index"`
	Year        int        `json:"year" gorm:"column:year;uniqueIndex:idx_payments_apartment_period"`
	Month       int        `json:"month" gorm:"column:month;uniqueIndex:idx_payments_apartment_period"`
	Amount      int64      `json:"amount" gorm:"column:amount"`
	DueDate     time.Time  `json:"due_date" gorm:"column:due_date"`
	Status      string     `json:"status" gorm:"column:status"`
	Method      string     `json:"method" gorm:"column:method"`
	Reference   string     `json:"reference" gorm:"column:reference"`
	PaidAt      *time.Time `json:"paid_at" gorm:"column:paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Confirmation *PaymentConfirmation `json:"confirmation,omitempty" gorm:"foreignKey:PaymentID"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// MonthKey returns the billing month of the payment
func (p *Payment) MonthKey() MonthKey {
	return MonthKey{Year: p.Year, Month: p.Month}
}

// DerivedStatus reports the payment status as seen at the given time: a
// pending payment past its due date is overdue
func (p *Payment) DerivedStatus(now time.Time) string {
	if p.Status == PaymentStatusPending && now.After(p.DueDate) {
		return PaymentStatusOverdue
	}
	return p.Status
}

// Late reports whether the payment was settled after its due date
func (p *Payment) Late() bool {
	return p.PaidAt != nil && p.PaidAt.After(p.DueDate)
}
