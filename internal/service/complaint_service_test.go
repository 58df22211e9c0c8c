package service

import (
	"testing"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newComplaintService(t *testing.T) (ComplaintService, *gorm.DB) {
	db := setupTestDB(t)
	complaintRepo := repository.NewComplaintRepository(db)
	tenancyRepo := repository.NewTenancyRepository(db)
	return NewComplaintService(complaintRepo, tenancyRepo, testLogger()), db
}

func fileComplaint(t *testing.T, svc ComplaintService, apartmentID, renterID uint) uint {
	resp, err := svc.CreateComplaint(models.Actor{ID: renterID, Role: models.RoleRenter}, CreateComplaintInput{
		ApartmentID: apartmentID,
		Title:       "Leaking kitchen faucet",
		Category:    "plumbing",
		Description: "Drips constantly",
	})
	require.NoError(t, err)
	return resp.ID
}

func TestCreateComplaint(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, vacant := seedTenancy(t, db)

	resp, err := svc.CreateComplaint(models.Actor{ID: renter.ID, Role: models.RoleRenter}, CreateComplaintInput{
		ApartmentID: occupied.ID,
		Title:       "Leaking kitchen faucet",
		Category:    "plumbing",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintStatusPending, resp.Status)
	assert.Equal(t, models.PriorityMedium, resp.Priority)
	assert.Equal(t, renter.ID, resp.RenterID)
	assert.False(t, resp.ManagerMarkedResolved)
	assert.False(t, resp.RenterMarkedResolved)
	assert.Equal(t, string(models.ConfirmationStateUnresolved), resp.ConfirmationState)
	assert.Contains(t, resp.DocumentID, "cmp-")

	_, err = svc.CreateComplaint(models.Actor{ID: renter.ID, Role: models.RoleRenter}, CreateComplaintInput{
		ApartmentID: vacant.ID,
		Title:       "Broken window",
		Category:    "structural",
	})
	assert.ErrorIs(t, err, ErrApartmentVacant)
}

func TestDualConfirmationFlow(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}
	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}

	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	started, err := svc.StartProgress(manager, id)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, started.Status)
	assert.NotNil(t, started.AssignedAt)

	// Manager resolution alone does not close the complaint
	resolved, err := svc.ManagerResolve(manager, id, "Replaced the faucet cartridge")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, resolved.Status)
	assert.True(t, resolved.ManagerMarkedResolved)
	assert.False(t, resolved.RenterMarkedResolved)
	assert.True(t, resolved.NeedsConfirmation)
	assert.Equal(t, string(models.ConfirmationStateAwaitingRenterConfirmation), resolved.ConfirmationState)
	assert.Nil(t, resolved.CompletedAt)

	// Renter confirmation completes the dual confirmation
	confirmed, err := svc.RenterConfirmResolve(renterActor, id)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, confirmed.Status)
	assert.True(t, confirmed.ManagerMarkedResolved)
	assert.True(t, confirmed.RenterMarkedResolved)
	assert.False(t, confirmed.NeedsConfirmation)
	assert.Equal(t, string(models.ConfirmationStateResolved), confirmed.ConfirmationState)
	assert.NotNil(t, confirmed.CompletedAt)
}

func TestRenterConfirmBeforeManagerResolve(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	_, err := svc.RenterConfirmResolve(models.Actor{ID: renter.ID, Role: models.RoleRenter}, id)
	assert.ErrorIs(t, err, ErrManagerNotResolved)
}

func TestRenterConfirmTwice(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}
	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}

	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	_, err := svc.ManagerResolve(manager, id, "Fixed")
	require.NoError(t, err)
	_, err = svc.RenterConfirmResolve(renterActor, id)
	require.NoError(t, err)

	_, err = svc.RenterConfirmResolve(renterActor, id)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestRenterSelfResolve(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	// A single call sets both flags and resolves the complaint
	resp, err := svc.RenterSelfResolve(models.Actor{ID: renter.ID, Role: models.RoleRenter}, id)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, resp.Status)
	assert.True(t, resp.ManagerMarkedResolved)
	assert.True(t, resp.RenterMarkedResolved)
	assert.NotNil(t, resp.CompletedAt)

	// A resolved complaint accepts no further transitions
	_, err = svc.RenterSelfResolve(models.Actor{ID: renter.ID, Role: models.RoleRenter}, id)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.ManagerResolve(models.Actor{ID: 42, Role: models.RoleManager}, id, "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestComplaintOwnership(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	other := &models.Renter{FullName: "Bob Lee", Email: "bob@example.com"}
	require.NoError(t, db.Create(other).Error)

	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	_, err := svc.RenterSelfResolve(models.Actor{ID: other.ID, Role: models.RoleRenter}, id)
	assert.ErrorIs(t, err, ErrNotComplaintOwner)

	_, err = svc.RenterConfirmResolve(models.Actor{ID: other.ID, Role: models.RoleRenter}, id)
	assert.ErrorIs(t, err, ErrNotComplaintOwner)
}

func TestEscalateLadder(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}
	id := fileComplaint(t, svc, occupied.ID, renter.ID)

	// medium -> high -> urgent
	resp, err := svc.Escalate(manager, id)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, resp.Priority)

	resp, err = svc.Escalate(manager, id)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, resp.Priority)

	// Escalating past the top of the ladder is a successful no-op
	resp, err = svc.Escalate(manager, id)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, resp.Priority)
}

func TestDeleteComplaint(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}
	manager := models.Actor{ID: 42, Role: models.RoleManager}

	id := fileComplaint(t, svc, occupied.ID, renter.ID)
	require.NoError(t, svc.DeleteComplaint(renterActor, id))
	_, err := svc.GetComplaint(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A complaint that has been worked on can no longer be withdrawn
	id = fileComplaint(t, svc, occupied.ID, renter.ID)
	_, err = svc.StartProgress(manager, id)
	require.NoError(t, err)
	err = svc.DeleteComplaint(renterActor, id)
	assert.ErrorIs(t, err, ErrNotDeletable)
}

func TestResolvedImpliesBothFlags(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}
	renterActor := models.Actor{ID: renter.ID, Role: models.RoleRenter}

	dual := fileComplaint(t, svc, occupied.ID, renter.ID)
	_, err := svc.ManagerResolve(manager, dual, "Fixed")
	require.NoError(t, err)
	_, err = svc.RenterConfirmResolve(renterActor, dual)
	require.NoError(t, err)

	selfResolved := fileComplaint(t, svc, occupied.ID, renter.ID)
	_, err = svc.RenterSelfResolve(renterActor, selfResolved)
	require.NoError(t, err)

	open := fileComplaint(t, svc, occupied.ID, renter.ID)
	_, err = svc.ManagerResolve(manager, open, "Fixed")
	require.NoError(t, err)

	var complaints []models.MaintenanceRequest
	require.NoError(t, db.Find(&complaints).Error)
	for _, c := range complaints {
		bothFlags := c.ManagerMarkedResolved && c.RenterMarkedResolved
		assert.Equal(t, bothFlags, c.Status == models.ComplaintStatusResolved,
			"status must be resolved exactly when both flags are set")
	}
}

func TestListComplaintsNeedsConfirmationFilter(t *testing.T) {
	svc, db := newComplaintService(t)
	_, renter, occupied, _ := seedTenancy(t, db)

	manager := models.Actor{ID: 42, Role: models.RoleManager}

	awaiting := fileComplaint(t, svc, occupied.ID, renter.ID)
	_, err := svc.ManagerResolve(manager, awaiting, "Fixed")
	require.NoError(t, err)

	fileComplaint(t, svc, occupied.ID, renter.ID)

	needs := true
	rows, total, err := svc.ListComplaints(repository.ComplaintFilter{NeedsConfirmation: &needs}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, awaiting, rows[0].ID)
	assert.True(t, rows[0].NeedsConfirmation)
}
