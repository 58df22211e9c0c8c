package handler

import (
	"errors"
	"strconv"

	"pms-be-svc/internal/middleware"
	"pms-be-svc/internal/models"
	"pms-be-svc/internal/repository"
	"pms-be-svc/internal/service"
	"pms-be-svc/pkg/logger"
	"pms-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateComplaintRequest represents the request body for filing a maintenance complaint
type CreateComplaintRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required" example:"3"`
	Title       string `json:"title" binding:"required" example:"Leaking kitchen faucet"`
	Category    string `json:"category" binding:"required" example:"plumbing"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent" example:"medium"`
	Description string `json:"description" example:"Drips constantly since Monday"`
}

// ResolveComplaintRequest represents the request body for the manager resolution step
type ResolveComplaintRequest struct {
	Resolution string `json:"resolution" binding:"required" example:"Replaced the faucet cartridge"`
}

// ComplaintHandler handles maintenance complaint HTTP requests
type ComplaintHandler struct {
	complaintService service.ComplaintService
	logger           *logger.Logger
}

// NewComplaintHandler creates a new ComplaintHandler instance
func NewComplaintHandler(complaintService service.ComplaintService, logger *logger.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		logger:           logger,
	}
}

// CreateComplaint files a new maintenance complaint
// @Summary File a maintenance complaint
// @Description File a maintenance complaint against an occupied apartment. Starts in pending with both resolution flags unset.
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body CreateComplaintRequest true "Complaint details"
// @Success 201 {object} utils.APIResponse{data=response.ComplaintResponse} "Complaint filed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 409 {object} utils.APIResponse "Apartment is vacant"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid complaint body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	complaint, err := h.complaintService.CreateComplaint(actor, service.CreateComplaintInput{
		ApartmentID: req.ApartmentID,
		Title:       req.Title,
		Category:    req.Category,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", req.ApartmentID).Error("Failed to create complaint")

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		case errors.Is(err, service.ErrApartmentVacant):
			utils.ConflictResponse(c, err.Error(), err)
		default:
			utils.InternalServerErrorResponse(c, "Failed to create complaint", err)
		}
		return
	}

	utils.CreatedResponse(c, "Complaint filed successfully", complaint)
}

// GetComplaint retrieves a complaint by ID
// @Summary Get a complaint
// @Description Get a maintenance complaint with its derived confirmation state
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Complaint retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id} [get]
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid complaint ID", err)
		return
	}

	complaint, err := h.complaintService.GetComplaint(complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Complaint not found")
			return
		}
		h.logger.WithError(err).WithField("complaint_id", complaintID).Error("Failed to get complaint")
		utils.InternalServerErrorResponse(c, "Failed to get complaint", err)
		return
	}

	utils.SuccessResponse(c, "Complaint retrieved successfully", complaint)
}

// ListComplaints retrieves complaints with optional filters
// @Summary List complaints
// @Description List maintenance complaints with optional apartment, renter, status, priority and needs-confirmation filters
// @Tags complaints
// @Accept json
// @Produce json
// @Param apartment_id query int false "Filter by apartment"
// @Param renter_id query int false "Filter by renter"
// @Param status query string false "Filter by status (pending, in_progress, resolved)"
// @Param priority query string false "Filter by priority (low, medium, high, urgent)"
// @Param needs_confirmation query bool false "Only complaints awaiting renter confirmation"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]response.ComplaintResponse} "Complaints retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints [get]
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	var filter repository.ComplaintFilter

	if v := c.Query("apartment_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid apartment_id parameter", err)
			return
		}
		apartmentID := uint(id)
		filter.ApartmentID = &apartmentID
	}
	if v := c.Query("renter_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid renter_id parameter", err)
			return
		}
		renterID := uint(id)
		filter.RenterID = &renterID
	}
	if v := c.Query("needs_confirmation"); v != "" {
		needs, err := strconv.ParseBool(v)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid needs_confirmation parameter", err)
			return
		}
		filter.NeedsConfirmation = &needs
	}
	filter.Status = c.Query("status")
	filter.Priority = c.Query("priority")

	complaints, total, err := h.complaintService.ListComplaints(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list complaints")
		utils.InternalServerErrorResponse(c, "Failed to list complaints", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Complaints retrieved successfully", complaints, page, limit, total)
}

// StartProgress moves a pending complaint into in_progress
// @Summary Start working on a complaint
// @Description Move a pending complaint into in_progress. Manager only.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Complaint in progress"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint not in pending"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id}/start [post]
func (h *ComplaintHandler) StartProgress(c *gin.Context) {
	h.transition(c, "start", func(actor models.Actor, id uint) (interface{}, error) {
		return h.complaintService.StartProgress(actor, id)
	}, "Complaint moved to in progress")
}

// ManagerResolve records the manager side of the dual confirmation
// @Summary Mark a complaint resolved (manager)
// @Description Record the manager resolution with its note. The complaint reaches resolved only once the renter confirms.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param request body ResolveComplaintRequest true "Resolution note"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Manager resolution recorded"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint not open or already marked"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id}/resolve [post]
func (h *ComplaintHandler) ManagerResolve(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid complaint ID", err)
		return
	}

	var req ResolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Resolution note is required", err)
		return
	}

	complaint, err := h.complaintService.ManagerResolve(actor, complaintID, req.Resolution)
	if err != nil {
		h.handleTransitionError(c, complaintID, "resolve", err)
		return
	}

	utils.SuccessResponse(c, "Manager resolution recorded", complaint)
}

// RenterSelfResolve lets the filing renter close the issue in one step
// @Summary Self-resolve a complaint (renter)
// @Description The filing renter marks the issue resolved on their own; both confirmation flags are set in one step.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Complaint resolved"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 403 {object} utils.APIResponse "Not the filing renter"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint not open"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id}/self-resolve [post]
func (h *ComplaintHandler) RenterSelfResolve(c *gin.Context) {
	h.transition(c, "self-resolve", func(actor models.Actor, id uint) (interface{}, error) {
		return h.complaintService.RenterSelfResolve(actor, id)
	}, "Complaint resolved")
}

// RenterConfirmResolve records the renter side of the dual confirmation
// @Summary Confirm a manager resolution (renter)
// @Description The filing renter confirms the manager resolution, completing the dual confirmation.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Resolution confirmed"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 403 {object} utils.APIResponse "Not the filing renter"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Manager has not resolved or already confirmed"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id}/confirm [post]
func (h *ComplaintHandler) RenterConfirmResolve(c *gin.Context) {
	h.transition(c, "confirm", func(actor models.Actor, id uint) (interface{}, error) {
		return h.complaintService.RenterConfirmResolve(actor, id)
	}, "Resolution confirmed")
}

// Escalate bumps the complaint priority one step
// @Summary Escalate a complaint
// @Description Bump an open complaint one step up the priority ladder. Escalating an urgent complaint is a no-op.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse{data=response.ComplaintResponse} "Complaint escalated"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint not open"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id}/escalate [post]
func (h *ComplaintHandler) Escalate(c *gin.Context) {
	h.transition(c, "escalate", func(actor models.Actor, id uint) (interface{}, error) {
		return h.complaintService.Escalate(actor, id)
	}, "Complaint escalated")
}

// DeleteComplaint withdraws a complaint that was never worked on
// @Summary Withdraw a complaint
// @Description Delete a complaint that is still pending and has no resolution flags set.
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.APIResponse "Complaint withdrawn"
// @Failure 400 {object} utils.APIResponse "Invalid complaint ID"
// @Failure 403 {object} utils.APIResponse "Not the filing renter"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Failure 409 {object} utils.APIResponse "Complaint already worked on"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/complaints/{id} [delete]
func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid complaint ID", err)
		return
	}

	if err := h.complaintService.DeleteComplaint(actor, complaintID); err != nil {
		h.handleTransitionError(c, complaintID, "delete", err)
		return
	}

	utils.SuccessResponse(c, "Complaint withdrawn successfully", nil)
}

// transition runs a body-less state transition with shared error mapping
func (h *ComplaintHandler) transition(c *gin.Context, action string, fn func(actor models.Actor, id uint) (interface{}, error), message string) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	complaintID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid complaint ID", err)
		return
	}

	complaint, err := fn(actor, complaintID)
	if err != nil {
		h.handleTransitionError(c, complaintID, action, err)
		return
	}

	utils.SuccessResponse(c, message, complaint)
}

func (h *ComplaintHandler) handleTransitionError(c *gin.Context, complaintID uint, action string, err error) {
	h.logger.WithError(err).WithFields(map[string]interface{}{
		"complaint_id": complaintID,
		"action":       action,
	}).Error("Complaint transition failed")

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFoundResponse(c, "Complaint not found")
	case errors.Is(err, service.ErrNotComplaintOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrManagerNotResolved),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrNotDeletable):
		utils.ConflictResponse(c, err.Error(), err)
	default:
		utils.InternalServerErrorResponse(c, "Failed to update complaint", err)
	}
}
