package handler

import (
	"errors"
	"strconv"

	"pms-be-svc/internal/service"
	"pms-be-svc/pkg/logger"
	"pms-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TenancyHandler handles building and apartment read requests
type TenancyHandler struct {
	tenancyService service.TenancyService
	logger         *logger.Logger
}

// NewTenancyHandler creates a new TenancyHandler instance
func NewTenancyHandler(tenancyService service.TenancyService, logger *logger.Logger) *TenancyHandler {
	return &TenancyHandler{
		tenancyService: tenancyService,
		logger:         logger,
	}
}

// ListBuildings retrieves all buildings
// @Summary List buildings
// @Description List all buildings managed by the portal
// @Tags tenancy
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Building} "Buildings retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/buildings [get]
func (h *TenancyHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.tenancyService.ListBuildings()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list buildings")
		utils.InternalServerErrorResponse(c, "Failed to list buildings", err)
		return
	}

	utils.SuccessResponse(c, "Buildings retrieved successfully", buildings)
}

// ListApartments retrieves apartments, optionally for one building
// @Summary List apartments
// @Description List apartments with current renter, optionally filtered by building
// @Tags tenancy
// @Accept json
// @Produce json
// @Param building_id query int false "Filter by building"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Apartment} "Apartments retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments [get]
func (h *TenancyHandler) ListApartments(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	var buildingID *uint
	if v := c.Query("building_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid building_id parameter", err)
			return
		}
		parsed := uint(id)
		buildingID = &parsed
	}

	apartments, total, err := h.tenancyService.ListApartments(buildingID, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list apartments")
		utils.InternalServerErrorResponse(c, "Failed to list apartments", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Apartments retrieved successfully", apartments, page, limit, total)
}

// GetApartment retrieves one apartment with its building and renter
// @Summary Get an apartment
// @Description Get an apartment with its building and, when occupied, the current renter
// @Tags tenancy
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=service.ApartmentDetail} "Apartment retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid apartment ID"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id} [get]
func (h *TenancyHandler) GetApartment(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	detail, err := h.tenancyService.GetApartmentDetail(apartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Apartment not found")
			return
		}
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get apartment")
		utils.InternalServerErrorResponse(c, "Failed to get apartment", err)
		return
	}

	utils.SuccessResponse(c, "Apartment retrieved successfully", detail)
}
