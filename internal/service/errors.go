package service

import "errors"

// Workflow precondition errors. All of them mean the request was well-formed
// but the current row state does not allow the transition; no write has
// happened when one of these is returned.
var (
	// ErrDuplicatePayment is returned when a payment already exists for the
	// apartment and billing month
	ErrDuplicatePayment = errors.New("a payment for this apartment and month already exists")

	// ErrInsufficientAmount is returned when the submitted amount is below
	// the contracted rent for the apartment
	ErrInsufficientAmount = errors.New("payment amount is below the contracted rent")

	// ErrApartmentVacant is returned when the apartment has no active renter
	ErrApartmentVacant = errors.New("apartment has no active renter")

	// ErrAlreadyVerified is returned when a payment confirmation has already
	// left pending_review
	ErrAlreadyVerified = errors.New("payment has already been verified or rejected")

	// ErrInvalidState is returned when a complaint transition is attempted
	// from a state that does not allow it
	ErrInvalidState = errors.New("complaint is not in a state that allows this transition")

	// ErrManagerNotResolved is returned when a renter confirms resolution
	// before the manager marked the complaint resolved
	ErrManagerNotResolved = errors.New("manager has not marked this complaint as resolved")

	// ErrAlreadyConfirmed is returned when the renter already confirmed the
	// resolution
	ErrAlreadyConfirmed = errors.New("resolution has already been confirmed")

	// ErrNotDeletable is returned when deleting a complaint on which work may
	// have started
	ErrNotDeletable = errors.New("complaint can only be deleted while still pending")

	// ErrNotComplaintOwner is returned when a renter acts on a complaint that
	// belongs to another renter
	ErrNotComplaintOwner = errors.New("complaint belongs to another renter")
)
