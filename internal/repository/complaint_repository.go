package repository

import (
	"time"

	"pms-be-svc/internal/models"

	"gorm.io/gorm"
)

// ComplaintFilter holds optional filters for maintenance request listing
type ComplaintFilter struct {
	ApartmentID       *uint
	RenterID          *uint
	Status            string
	Priority          string
	NeedsConfirmation *bool
}

// ComplaintRepository defines the interface for maintenance request data
// operations. Every state transition takes the expected pre-state as a WHERE
// guard and reports the affected row count, so concurrent transitions cannot
// double-apply.
type ComplaintRepository interface {
	CreateComplaint(complaint *models.MaintenanceRequest) error
	GetComplaintByID(id uint) (*models.MaintenanceRequest, error)
	ListComplaints(filter ComplaintFilter, page, limit int) ([]*models.MaintenanceRequest, int64, error)
	MarkInProgress(id uint, at time.Time) (int64, error)
	MarkManagerResolved(id uint, resolution string, completedAt *time.Time) (int64, error)
	MarkRenterSelfResolved(id uint, at time.Time) (int64, error)
	MarkRenterConfirmed(id uint, at time.Time) (int64, error)
	UpdatePriority(id uint, currentPriority, newPriority string) (int64, error)
	DeleteIfPending(id uint) (int64, error)
}

// complaintRepository implements ComplaintRepository
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new instance of ComplaintRepository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{
		db: db,
	}
}

var openStatuses = []string{models.ComplaintStatusPending, models.ComplaintStatusInProgress}

// CreateComplaint creates a new maintenance request record
func (r *complaintRepository) CreateComplaint(complaint *models.MaintenanceRequest) error {
	return r.db.Create(complaint).Error
}

// GetComplaintByID retrieves a maintenance request by ID
func (r *complaintRepository) GetComplaintByID(id uint) (*models.MaintenanceRequest, error) {
	var complaint models.MaintenanceRequest

	err := r.db.Where("id = ?", id).First(&complaint).Error
	if err != nil {
		return nil, err
	}

	return &complaint, nil
}

// ListComplaints retrieves maintenance requests with optional filters and
// pagination. The needs-confirmation filter is expressed over the two flag
// columns directly since the derived field is never persisted.
func (r *complaintRepository) ListComplaints(filter ComplaintFilter, page, limit int) ([]*models.MaintenanceRequest, int64, error) {
	var complaints []*models.MaintenanceRequest
	var total int64

	query := r.db.Model(&models.MaintenanceRequest{})
	if filter.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.RenterID != nil {
		query = query.Where("renter_id = ?", *filter.RenterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.NeedsConfirmation != nil {
		if *filter.NeedsConfirmation {
			query = query.Where("manager_marked_resolved = ? AND renter_marked_resolved = ?", true, false)
		} else {
			query = query.Where("manager_marked_resolved = ? OR renter_marked_resolved = ?", false, true)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

// MarkInProgress moves a pending request to in_progress and stamps assigned_at
func (r *complaintRepository) MarkInProgress(id uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, models.ComplaintStatusPending).
		Updates(map[string]interface{}{
			"status":      models.ComplaintStatusInProgress,
			"assigned_at": at,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// MarkManagerResolved sets the manager resolution flag on an open request.
// When the renter flag is already true the caller passes completedAt and the
// row reaches its terminal resolved status in the same write.
func (r *complaintRepository) MarkManagerResolved(id uint, resolution string, completedAt *time.Time) (int64, error) {
	updates := map[string]interface{}{
		"manager_marked_resolved": true,
		"resolution":              resolution,
	}
	if completedAt != nil {
		updates["status"] = models.ComplaintStatusResolved
		updates["completed_at"] = completedAt
	}

	result := r.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND status IN ? AND manager_marked_resolved = ?", id, openStatuses, false).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// MarkRenterSelfResolved closes an open request on the renter's own word:
// both flags are set and the status goes terminal in a single write
func (r *complaintRepository) MarkRenterSelfResolved(id uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND status IN ?", id, openStatuses).
		Updates(map[string]interface{}{
			"manager_marked_resolved": true,
			"renter_marked_resolved":  true,
			"status":                  models.ComplaintStatusResolved,
			"completed_at":            at,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// MarkRenterConfirmed acknowledges the manager's resolution: valid only while
// the manager flag is set and the renter flag is not
func (r *complaintRepository) MarkRenterConfirmed(id uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND manager_marked_resolved = ? AND renter_marked_resolved = ?", id, true, false).
		Updates(map[string]interface{}{
			"renter_marked_resolved": true,
			"status":                 models.ComplaintStatusResolved,
			"completed_at":           at,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// UpdatePriority raises the priority with a guard on the current value, so
// concurrent escalations each advance the ladder at most one step
func (r *complaintRepository) UpdatePriority(id uint, currentPriority, newPriority string) (int64, error) {
	result := r.db.Model(&models.MaintenanceRequest{}).
		Where("id = ? AND priority = ?", id, currentPriority).
		Update("priority", newPriority)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// DeleteIfPending removes a request only while no work has started on it:
// still pending and neither resolution flag set
func (r *complaintRepository) DeleteIfPending(id uint) (int64, error) {
	result := r.db.Where("id = ? AND status = ? AND manager_marked_resolved = ? AND renter_marked_resolved = ?",
		id, models.ComplaintStatusPending, false, false).
		Delete(&models.MaintenanceRequest{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
