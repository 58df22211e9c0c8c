package response

import "time"

// ComplaintResponse represents a maintenance request with its derived
// confirmation fields. needs_confirmation and confirmation_state are always
// recomputed from the two persisted flags, never stored.
type ComplaintResponse struct {
	ID                    uint       `json:"id" example:"7"`
	DocumentID            string     `json:"document_id" example:"cmp-3f6c1a"`
	ApartmentID           uint       `json:"apartment_id" example:"3"`
	RenterID              uint       `json:"renter_id" example:"12"`
	Title                 string     `json:"title" example:"Leaking kitchen faucet"`
	Category              string     `json:"category" example:"plumbing"`
	Description           string     `json:"description" example:"Faucet drips continuously"`
	Priority              string     `json:"priority" example:"medium"`
	Status                string     `json:"status" example:"pending"`
	ManagerMarkedResolved bool       `json:"manager_marked_resolved" example:"false"`
	RenterMarkedResolved  bool       `json:"renter_marked_resolved" example:"false"`
	NeedsConfirmation     bool       `json:"needs_confirmation" example:"false"`
	ConfirmationState     string     `json:"confirmation_state" example:"unresolved"`
	Resolution            string     `json:"resolution,omitempty"`
	AssignedAt            *time.Time `json:"assigned_at,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
