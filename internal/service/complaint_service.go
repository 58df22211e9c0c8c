package service

import (
	"fmt"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/models/response"
	"pms-be-svc/internal/repository"
	"pms-be-svc/pkg/logger"

	"github.com/google/uuid"
)

// CreateComplaintInput carries the validated fields of a new maintenance request
type CreateComplaintInput struct {
	ApartmentID uint
	Title       string
	Category    string
	Priority    string
	Description string
}

// ComplaintService enforces the maintenance request state machine with its
// dual-confirmation resolution: the manager and the renter independently mark
// a request resolved and the row reaches resolved only when both agree, with
// the renter's self-resolution as an intentional shortcut.
type ComplaintService interface {
	CreateComplaint(actor models.Actor, input CreateComplaintInput) (*response.ComplaintResponse, error)
	GetComplaint(id uint) (*response.ComplaintResponse, error)
	ListComplaints(filter repository.ComplaintFilter, page, limit int) ([]*response.ComplaintResponse, int64, error)
	StartProgress(actor models.Actor, id uint) (*response.ComplaintResponse, error)
	ManagerResolve(actor models.Actor, id uint, resolution string) (*response.ComplaintResponse, error)
	RenterSelfResolve(actor models.Actor, id uint) (*response.ComplaintResponse, error)
	RenterConfirmResolve(actor models.Actor, id uint) (*response.ComplaintResponse, error)
	Escalate(actor models.Actor, id uint) (*response.ComplaintResponse, error)
	DeleteComplaint(actor models.Actor, id uint) error
}

// complaintService implements ComplaintService
type complaintService struct {
	complaintRepo repository.ComplaintRepository
	tenancyRepo   repository.TenancyRepository
	logger        *logger.Logger
}

// NewComplaintService creates a new instance of ComplaintService
func NewComplaintService(complaintRepo repository.ComplaintRepository, tenancyRepo repository.TenancyRepository, logger *logger.Logger) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		tenancyRepo:   tenancyRepo,
		logger:        logger,
	}
}

// CreateComplaint opens a maintenance request for the apartment's active
// renter with both resolution flags cleared
func (s *complaintService) CreateComplaint(actor models.Actor, input CreateComplaintInput) (*response.ComplaintResponse, error) {
	apartment, err := s.tenancyRepo.GetApartmentByID(input.ApartmentID)
	if err != nil {
		return nil, fmt.Errorf("apartment lookup: %w", err)
	}

	if !apartment.Occupied() {
		return nil, ErrApartmentVacant
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	complaint := &models.MaintenanceRequest{
		DocumentID:  "cmp-" + uuid.New().String(),
		ApartmentID: apartment.ID,
		RenterID:    *apartment.RenterID,
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Priority:    priority,
		Status:      models.ComplaintStatusPending,
	}

	if err := s.complaintRepo.CreateComplaint(complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": complaint.ID,
		"apartment_id": apartment.ID,
		"renter_id":    complaint.RenterID,
		"priority":     priority,
		"actor_id":     actor.ID,
	}).Info("Complaint created")

	return toComplaintResponse(complaint), nil
}

// GetComplaint retrieves a maintenance request with its derived fields
func (s *complaintService) GetComplaint(id uint) (*response.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	return toComplaintResponse(complaint), nil
}

// ListComplaints retrieves maintenance requests with optional filters and pagination
func (s *complaintService) ListComplaints(filter repository.ComplaintFilter, page, limit int) ([]*response.ComplaintResponse, int64, error) {
	complaints, total, err := s.complaintRepo.ListComplaints(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*response.ComplaintResponse, 0, len(complaints))
	for _, complaint := range complaints {
		responses = append(responses, toComplaintResponse(complaint))
	}

	return responses, total, nil
}

// StartProgress acknowledges that work on a pending request has started
func (s *complaintService) StartProgress(actor models.Actor, id uint) (*response.ComplaintResponse, error) {
	if _, err := s.complaintRepo.GetComplaintByID(id); err != nil {
		return nil, fmt.Errorf("complaint lookup: %w", err)
	}

	rows, err := s.complaintRepo.MarkInProgress(id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to start progress: %w", err)
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"actor_id":     actor.ID,
	}).Info("Complaint moved to in_progress")

	return s.GetComplaint(id)
}

// ManagerResolve sets the manager's resolution flag. The status only becomes
// resolved when the renter flag is already set; otherwise the request stays
// open awaiting the renter's confirmation.
func (s *complaintService) ManagerResolve(actor models.Actor, id uint, resolution string) (*response.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return nil, fmt.Errorf("complaint lookup: %w", err)
	}

	if !complaint.Open() {
		return nil, ErrInvalidState
	}

	var completedAt *time.Time
	if complaint.RenterMarkedResolved {
		now := time.Now()
		completedAt = &now
	}

	rows, err := s.complaintRepo.MarkManagerResolved(id, resolution, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mark resolved: %w", err)
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"manager_id":   actor.ID,
		"final":        completedAt != nil,
	}).Info("Manager marked complaint resolved")

	return s.GetComplaint(id)
}

// RenterSelfResolve closes the renter's own complaint without a manager
// action. The renter asserting the issue is moot makes manager confirmation
// unnecessary; both flags are set in a single write.
func (s *complaintService) RenterSelfResolve(actor models.Actor, id uint) (*response.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return nil, fmt.Errorf("complaint lookup: %w", err)
	}

	if actor.Role == models.RoleRenter && complaint.RenterID != actor.ID {
		return nil, ErrNotComplaintOwner
	}

	if !complaint.Open() {
		return nil, ErrInvalidState
	}

	rows, err := s.complaintRepo.MarkRenterSelfResolved(id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to self-resolve: %w", err)
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"renter_id":    actor.ID,
	}).Info("Renter self-resolved complaint")

	return s.GetComplaint(id)
}

// RenterConfirmResolve acknowledges the manager's resolution, completing the
// dual confirmation and moving the request to resolved
func (s *complaintService) RenterConfirmResolve(actor models.Actor, id uint) (*response.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return nil, fmt.Errorf("complaint lookup: %w", err)
	}

	if actor.Role == models.RoleRenter && complaint.RenterID != actor.ID {
		return nil, ErrNotComplaintOwner
	}
	if !complaint.ManagerMarkedResolved {
		return nil, ErrManagerNotResolved
	}
	if complaint.RenterMarkedResolved {
		return nil, ErrAlreadyConfirmed
	}

	rows, err := s.complaintRepo.MarkRenterConfirmed(id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to confirm resolution: %w", err)
	}
	if rows == 0 {
		return nil, ErrAlreadyConfirmed
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"renter_id":    actor.ID,
	}).Info("Renter confirmed resolution")

	return s.GetComplaint(id)
}

// Escalate raises the priority one step on the ladder. Escalating a request
// already at urgent is a successful no-op, never an error.
func (s *complaintService) Escalate(actor models.Actor, id uint) (*response.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return nil, fmt.Errorf("complaint lookup: %w", err)
	}

	if complaint.Priority == models.PriorityUrgent {
		return toComplaintResponse(complaint), nil
	}

	next := models.NextPriority(complaint.Priority)
	if _, err := s.complaintRepo.UpdatePriority(id, complaint.Priority, next); err != nil {
		return nil, fmt.Errorf("failed to escalate: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"from":         complaint.Priority,
		"to":           next,
		"actor_id":     actor.ID,
	}).Info("Complaint escalated")

	return s.GetComplaint(id)
}

// DeleteComplaint removes a request that nobody has started working on.
// Once work may have begun, deletion would destroy the audit trail.
func (s *complaintService) DeleteComplaint(actor models.Actor, id uint) error {
	complaint, err := s.complaintRepo.GetComplaintByID(id)
	if err != nil {
		return fmt.Errorf("complaint lookup: %w", err)
	}

	if actor.Role == models.RoleRenter && complaint.RenterID != actor.ID {
		return ErrNotComplaintOwner
	}

	if complaint.Status != models.ComplaintStatusPending || complaint.ManagerMarkedResolved || complaint.RenterMarkedResolved {
		return ErrNotDeletable
	}

	rows, err := s.complaintRepo.DeleteIfPending(id)
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	if rows == 0 {
		return ErrNotDeletable
	}

	s.logger.WithFields(map[string]interface{}{
		"complaint_id": id,
		"actor_id":     actor.ID,
	}).Info("Complaint deleted")

	return nil
}

// toComplaintResponse maps a maintenance request onto its API shape, always
// recomputing the derived confirmation fields from the two flags
func toComplaintResponse(complaint *models.MaintenanceRequest) *response.ComplaintResponse {
	return &response.ComplaintResponse{
		ID:                    complaint.ID,
		DocumentID:            complaint.DocumentID,
		ApartmentID:           complaint.ApartmentID,
		RenterID:              complaint.RenterID,
		Title:                 complaint.Title,
		Category:              complaint.Category,
		Description:           complaint.Description,
		Priority:              complaint.Priority,
		Status:                complaint.Status,
		ManagerMarkedResolved: complaint.ManagerMarkedResolved,
		RenterMarkedResolved:  complaint.RenterMarkedResolved,
		NeedsConfirmation:     complaint.NeedsConfirmation(),
		ConfirmationState:     string(complaint.ConfirmationState()),
		Resolution:            complaint.Resolution,
		AssignedAt:            complaint.AssignedAt,
		CompletedAt:           complaint.CompletedAt,
		CreatedAt:             complaint.CreatedAt,
		UpdatedAt:             complaint.UpdatedAt,
	}
}
