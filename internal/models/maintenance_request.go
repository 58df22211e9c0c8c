package models

import (
	"time"
)

// Maintenance request statuses
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// Maintenance request priorities, ordered low to urgent
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ConfirmationState is the tagged resolution state of a maintenance request,
// computed from the two persisted flags on load. It is never stored, which
// keeps the flags and the tag from drifting apart.
type ConfirmationState string

const (
	ConfirmationStateUnresolved                  ConfirmationState = "unresolved"
	ConfirmationStateAwaitingRenterConfirmation  ConfirmationState = "awaiting_renter_confirmation"
	ConfirmationStateAwaitingManagerConfirmation ConfirmationState = "awaiting_manager_confirmation"
	ConfirmationStateResolved                    ConfirmationState = "resolved"
)

// MaintenanceRequest represents the maintenance_requests table. The status
// column is resolved if and only if both resolution flags are true; a request
// with exactly one flag set is in an implicit awaiting-confirmation sub-state.
type MaintenanceRequest struct {
	ID                    uint       `json:"id" gorm:"primarykey"`
	DocumentID            string     `json:"document_id" gorm:"column:document_id"`
	ApartmentID           uint       `json:"apartment_id" gorm:"column:apartment_id;index"`
	RenterID              uint       `json:"renter_id" gorm:"column:renter_id;index"`
	Title                 string     `json:"title" gorm:"column:title"`
	Category              string     `json:"category" gorm:"column:category"`
	Description           string     `json:"description" gorm:"column:description"`
	Priority              string     `json:"priority" gorm:"column:priority"`
	Status                string     `json:"status" gorm:"column:status"`
	ManagerMarkedResolved bool       `json:"manager_marked_resolved" gorm:"column:manager_marked_resolved"`
	RenterMarkedResolved  bool       `json:"renter_marked_resolved" gorm:"column:renter_marked_resolved"`
	Resolution            string     `json:"resolution" gorm:"column:resolution"`
	AssignedAt            *time.Time `json:"assigned_at" gorm:"column:assigned_at"`
	CompletedAt           *time.Time `json:"completed_at" gorm:"column:completed_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for MaintenanceRequest
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// ConfirmationState computes the tagged resolution state from the two flags
func (m *MaintenanceRequest) ConfirmationState() ConfirmationState {
	switch {
	case m.ManagerMarkedResolved && m.RenterMarkedResolved:
		return ConfirmationStateResolved
	case m.ManagerMarkedResolved:
		return ConfirmationStateAwaitingRenterConfirmation
	case m.RenterMarkedResolved:
		return ConfirmationStateAwaitingManagerConfirmation
	default:
		return ConfirmationStateUnresolved
	}
}

// NeedsConfirmation reports whether the request awaits the renter's
// acknowledgment of the manager's resolution
func (m *MaintenanceRequest) NeedsConfirmation() bool {
	return m.ManagerMarkedResolved && !m.RenterMarkedResolved
}

// Open reports whether the request can still transition
func (m *MaintenanceRequest) Open() bool {
	return m.Status == ComplaintStatusPending || m.Status == ComplaintStatusInProgress
}

// NextPriority returns the next step on the escalation ladder. Urgent is the
// top of the ladder and maps to itself.
func NextPriority(priority string) string {
	switch priority {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityUrgent
	default:
		return PriorityUrgent
	}
}

// ValidPriority reports whether the value is a known priority
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
