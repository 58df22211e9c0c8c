package models

import (
	"time"
)

// Renter represents the renters table. Renter identity is owned by the
// tenancy directory; the workflow engines only read it.
type Renter struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	FullName  string    `json:"full_name" gorm:"column:full_name"`
	Email     string    `json:"email" gorm:"column:email"`
	Phone     string    `json:"phone" gorm:"column:phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Renter
func (Renter) TableName() string {
	return "renters"
}
