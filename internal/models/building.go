package models

import (
	"time"
)

// Building represents the buildings table
type Building struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"column:name"`
	Address   string    `json:"address" gorm:"column:address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Building
func (Building) TableName() string {
	return "buildings"
}
