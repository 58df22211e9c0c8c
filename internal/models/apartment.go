package models

import (
	"time"
)

// Apartment represents the apartments table. At most one active renter is
// assigned to an apartment at any time; a nil RenterID means vacant.
type Apartment struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	BuildingID  uint      `json:"building_id" gorm:"column:building_id;index"`
	UnitNumber  string    `json:"unit_number" gorm:"column:unit_number"`
	MonthlyRent int64     `json:"monthly_rent" gorm:"column:monthly_rent"`
	RenterID    *uint     `json:"renter_id" gorm:"column:renter_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}

// Occupied reports whether the apartment has an active renter
func (a *Apartment) Occupied() bool {
	return a.RenterID != nil
}
