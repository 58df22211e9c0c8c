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

// SubmitPaymentRequest represents the request body for submitting a rent payment
type SubmitPaymentRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required" example:"3"`
	Month       string `json:"month" binding:"required" example:"2024-01"`
	Amount      int64  `json:"amount" binding:"required,gt=0" example:"1200"`
	Method      string `json:"method" binding:"required" example:"bank_transfer"`
	Reference   string `json:"reference" binding:"required" example:"TX1"`
}

// VerifyPaymentRequest represents the request body for verifying a payment
type VerifyPaymentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=verified rejected" example:"verified"`
	Notes    string `json:"notes" example:"Matched against bank statement"`
}

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(paymentService service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// SubmitPayment records a rent payment for an apartment and billing month
// @Summary Submit a rent payment
// @Description Submit a rent payment for an apartment and billing month. Creates the payment and a confirmation in pending_review.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body SubmitPaymentRequest true "Payment submission"
// @Success 201 {object} utils.APIResponse{data=response.PaymentResponse} "Payment submitted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 409 {object} utils.APIResponse "Duplicate payment or precondition failed"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments [post]
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid payment submission body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	month, err := models.ParseMonthKey(req.Month)
	if err != nil {
		h.logger.WithError(err).WithField("month", req.Month).Error("Invalid month parameter")
		utils.BadRequestResponse(c, "Month must be in YYYY-MM form", err)
		return
	}

	payment, err := h.paymentService.SubmitPayment(actor, service.SubmitPaymentInput{
		ApartmentID: req.ApartmentID,
		Month:       month,
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
	})
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": req.ApartmentID,
			"month":        req.Month,
		}).Error("Failed to submit payment")

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFoundResponse(c, "Apartment not found")
		case errors.Is(err, service.ErrDuplicatePayment),
			errors.Is(err, service.ErrInsufficientAmount),
			errors.Is(err, service.ErrApartmentVacant):
			utils.ConflictResponse(c, err.Error(), err)
		default:
			utils.InternalServerErrorResponse(c, "Failed to submit payment", err)
		}
		return
	}

	utils.CreatedResponse(c, "Payment submitted for review", payment)
}

// VerifyPayment resolves the confirmation of a submitted payment
// @Summary Verify or reject a payment
// @Description Resolve the pending confirmation of a payment into verified or rejected. One-shot: a second call fails.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param request body VerifyPaymentRequest true "Verification decision"
// @Success 200 {object} utils.APIResponse{data=response.PaymentResponse} "Verification recorded"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Payment not found"
// @Failure 409 {object} utils.APIResponse "Payment already verified"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/{id}/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Actor identity is required")
		return
	}

	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).WithField("id_param", c.Param("id")).Error("Invalid payment ID parameter")
		utils.BadRequestResponse(c, "Invalid payment ID", err)
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid verification body")
		utils.BadRequestResponse(c, "Decision must be verified or rejected", err)
		return
	}

	payment, err := h.paymentService.VerifyPayment(actor, paymentID, req.Decision, req.Notes)
	if err != nil {
		h.logger.WithError(err).WithField("payment_id", paymentID).Error("Failed to verify payment")

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFoundResponse(c, "Payment not found")
		case errors.Is(err, service.ErrAlreadyVerified):
			utils.ConflictResponse(c, err.Error(), err)
		default:
			utils.InternalServerErrorResponse(c, "Failed to verify payment", err)
		}
		return
	}

	utils.SuccessResponse(c, "Payment verification recorded", payment)
}

// GetPayment retrieves a payment by ID
// @Summary Get a payment
// @Description Get a payment with its confirmation and read-time derived status
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} utils.APIResponse{data=response.PaymentResponse} "Payment retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid payment ID"
// @Failure 404 {object} utils.APIResponse "Payment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment ID", err)
		return
	}

	payment, err := h.paymentService.GetPayment(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Payment not found")
			return
		}
		h.logger.WithError(err).WithField("payment_id", paymentID).Error("Failed to get payment")
		utils.InternalServerErrorResponse(c, "Failed to get payment", err)
		return
	}

	utils.SuccessResponse(c, "Payment retrieved successfully", payment)
}

// ListPayments retrieves payments with optional filters
// @Summary List payments
// @Description List payments with optional apartment, renter, month and status filters
// @Tags payments
// @Accept json
// @Produce json
// @Param apartment_id query int false "Filter by apartment"
// @Param renter_id query int false "Filter by renter"
// @Param month query string false "Filter by billing month (YYYY-MM)"
// @Param status query string false "Filter by stored status (pending, paid)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]response.PaymentResponse} "Payments retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	var filter repository.PaymentFilter

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
	if v := c.Query("month"); v != "" {
		month, err := models.ParseMonthKey(v)
		if err != nil {
			utils.BadRequestResponse(c, "Month must be in YYYY-MM form", err)
			return
		}
		filter.Month = &month
	}
	filter.Status = c.Query("status")

	payments, total, err := h.paymentService.ListPayments(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list payments")
		utils.InternalServerErrorResponse(c, "Failed to list payments", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Payments retrieved successfully", payments, page, limit, total)
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
