package handler

import (
	"errors"
	"fmt"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/service"
	"pms-be-svc/pkg/logger"
	"pms-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyticsHandler handles reconciliation and analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// MonthlyReconciliation produces the per-apartment reconciliation for a building and month
// @Summary Monthly reconciliation report
// @Description Classify every apartment of a building for a billing month and compute the collection rate
// @Tags analytics
// @Accept json
// @Produce json
// @Param id path int true "Building ID"
// @Param month query string true "Billing month (YYYY-MM)"
// @Success 200 {object} utils.APIResponse{data=response.MonthlyReconciliationResponse} "Reconciliation computed"
// @Failure 400 {object} utils.APIResponse "Invalid parameters"
// @Failure 404 {object} utils.APIResponse "Building not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/buildings/{id}/reconciliation [get]
func (h *AnalyticsHandler) MonthlyReconciliation(c *gin.Context) {
	buildingID, month, ok := h.reconciliationParams(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.MonthlyReconciliation(buildingID, month, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Building not found")
			return
		}
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"building_id": buildingID,
			"month":       month.String(),
		}).Error("Failed to compute reconciliation")
		utils.InternalServerErrorResponse(c, "Failed to compute reconciliation", err)
		return
	}

	utils.SuccessResponse(c, "Reconciliation computed successfully", report)
}

// ExportReconciliation downloads the reconciliation report as an Excel file
// @Summary Export monthly reconciliation to Excel
// @Description Download the per-apartment reconciliation for a building and month as an .xlsx file
// @Tags analytics
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Building ID"
// @Param month query string true "Billing month (YYYY-MM)"
// @Success 200 {file} binary "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid parameters"
// @Failure 404 {object} utils.APIResponse "Building not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/buildings/{id}/reconciliation/export [get]
func (h *AnalyticsHandler) ExportReconciliation(c *gin.Context) {
	buildingID, month, ok := h.reconciliationParams(c)
	if !ok {
		return
	}

	content, filename, err := h.analyticsService.ExportReconciliationToExcel(buildingID, month, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Building not found")
			return
		}
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"building_id": buildingID,
			"month":       month.String(),
		}).Error("Failed to export reconciliation")
		utils.InternalServerErrorResponse(c, "Failed to export reconciliation", err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// RiskClassification lists renters bucketed by late-payment percentage
// @Summary Renter risk classification
// @Description Classify every renter with payment history into High, Medium or Low Risk by late-payment percentage
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.RenterRiskResponse} "Risk classification computed"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/analytics/risk [get]
func (h *AnalyticsHandler) RiskClassification(c *gin.Context) {
	rows, err := h.analyticsService.RiskClassification()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute risk classification")
		utils.InternalServerErrorResponse(c, "Failed to compute risk classification", err)
		return
	}

	utils.SuccessResponse(c, "Risk classification computed successfully", rows)
}

// PaymentBehavior labels renters by average payment timing
// @Summary Renter payment behavior
// @Description Label every renter with payment history by average days late, with a suggested follow-up action
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.PaymentBehaviorResponse} "Payment behavior computed"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/analytics/behavior [get]
func (h *AnalyticsHandler) PaymentBehavior(c *gin.Context) {
	rows, err := h.analyticsService.PaymentBehavior()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute payment behavior")
		utils.InternalServerErrorResponse(c, "Failed to compute payment behavior", err)
		return
	}

	utils.SuccessResponse(c, "Payment behavior computed successfully", rows)
}

func (h *AnalyticsHandler) reconciliationParams(c *gin.Context) (uint, models.MonthKey, bool) {
	buildingID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid building ID", err)
		return 0, models.MonthKey{}, false
	}

	monthParam := c.Query("month")
	if monthParam == "" {
		utils.BadRequestResponse(c, "Month query parameter is required", nil)
		return 0, models.MonthKey{}, false
	}

	month, err := models.ParseMonthKey(monthParam)
	if err != nil {
		utils.BadRequestResponse(c, "Month must be in YYYY-MM form", err)
		return 0, models.MonthKey{}, false
	}

	return buildingID, month, true
}
