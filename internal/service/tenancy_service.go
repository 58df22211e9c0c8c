package service

import (
	"pms-be-svc/internal/models"
	"pms-be-svc/internal/repository"
	"pms-be-svc/pkg/logger"
)

// ApartmentDetail is an apartment joined with its building and active renter
type ApartmentDetail struct {
	Apartment *models.Apartment `json:"apartment"`
	Building  *models.Building  `json:"building"`
	Renter    *models.Renter    `json:"renter,omitempty"`
}

// TenancyService exposes read access to the tenancy directory
type TenancyService interface {
	ListBuildings() ([]*models.Building, error)
	ListApartments(buildingID *uint, page, limit int) ([]*models.Apartment, int64, error)
	GetApartmentDetail(id uint) (*ApartmentDetail, error)
}

// tenancyService implements TenancyService
type tenancyService struct {
	tenancyRepo repository.TenancyRepository
	logger      *logger.Logger
}

// NewTenancyService creates a new instance of TenancyService
func NewTenancyService(tenancyRepo repository.TenancyRepository, logger *logger.Logger) TenancyService {
	return &tenancyService{
		tenancyRepo: tenancyRepo,
		logger:      logger,
	}
}

// ListBuildings retrieves all buildings
func (s *tenancyService) ListBuildings() ([]*models.Building, error) {
	return s.tenancyRepo.ListBuildings()
}

// ListApartments retrieves apartments with optional building filter and pagination
func (s *tenancyService) ListApartments(buildingID *uint, page, limit int) ([]*models.Apartment, int64, error) {
	return s.tenancyRepo.ListApartments(buildingID, page, limit)
}

// GetApartmentDetail retrieves an apartment with its building and active renter
func (s *tenancyService) GetApartmentDetail(id uint) (*ApartmentDetail, error) {
	apartment, err := s.tenancyRepo.GetApartmentByID(id)
	if err != nil {
		return nil, err
	}

	building, err := s.tenancyRepo.GetBuildingByID(apartment.BuildingID)
	if err != nil {
		return nil, err
	}

	detail := &ApartmentDetail{
		Apartment: apartment,
		Building:  building,
	}

	if apartment.RenterID != nil {
		renter, err := s.tenancyRepo.GetRenterByID(*apartment.RenterID)
		if err != nil {
			s.logger.WithError(err).WithField("renter_id", *apartment.RenterID).Error("Failed to load renter for apartment")
		} else {
			detail.Renter = renter
		}
	}

	return detail, nil
}
