package models

// Role types supplied by the external identity provider
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleRenter  = "renter"
)

// Actor identifies the user performing a workflow operation. It is supplied
// by the identity provider at the gateway and threaded explicitly into every
// service call instead of being read from ambient request state.
type Actor struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}
