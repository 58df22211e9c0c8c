package repository

import (
	"pms-be-svc/internal/models"

	"gorm.io/gorm"
)

// TenancyRepository defines read access to the tenancy directory: buildings,
// apartments and their active renters. Rows are owned by the tenancy
// management collaborator; the workflow engines never mutate them.
type TenancyRepository interface {
	GetBuildingByID(id uint) (*models.Building, error)
	ListBuildings() ([]*models.Building, error)
	GetApartmentByID(id uint) (*models.Apartment, error)
	ListApartments(buildingID *uint, page, limit int) ([]*models.Apartment, int64, error)
	GetRenterByID(id uint) (*models.Renter, error)
}

// tenancyRepository implements TenancyRepository
type tenancyRepository struct {
	db *gorm.DB
}

// NewTenancyRepository creates a new instance of TenancyRepository
func NewTenancyRepository(db *gorm.DB) TenancyRepository {
	return &tenancyRepository{
		db: db,
	}
}

// GetBuildingByID retrieves a building by ID
func (r *tenancyRepository) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building

	err := r.db.Where("id = ?", id).First(&building).Error
	if err != nil {
		return nil, err
	}

	return &building, nil
}

// ListBuildings retrieves all buildings
func (r *tenancyRepository) ListBuildings() ([]*models.Building, error) {
	var buildings []*models.Building

	err := r.db.Order("id").Find(&buildings).Error
	if err != nil {
		return nil, err
	}

	return buildings, nil
}

// GetApartmentByID retrieves an apartment by ID
func (r *tenancyRepository) GetApartmentByID(id uint) (*models.Apartment, error) {
	var apartment models.Apartment

	err := r.db.Where("id = ?", id).First(&apartment).Error
	if err != nil {
		return nil, err
	}

	return &apartment, nil
}

// ListApartments retrieves apartments with optional building filter and pagination
func (r *tenancyRepository) ListApartments(buildingID *uint, page, limit int) ([]*models.Apartment, int64, error) {
	var apartments []*models.Apartment
	var total int64

	query := r.db.Model(&models.Apartment{})
	if buildingID != nil {
		query = query.Where("building_id = ?", *buildingID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("building_id, unit_number").Limit(limit).Offset(offset).Find(&apartments).Error
	if err != nil {
		return nil, 0, err
	}

	return apartments, total, nil
}

// GetRenterByID retrieves a renter by ID
func (r *tenancyRepository) GetRenterByID(id uint) (*models.Renter, error) {
	var renter models.Renter

	err := r.db.Where("id = ?", id).First(&renter).Error
	if err != nil {
		return nil, err
	}

	return &renter, nil
}
