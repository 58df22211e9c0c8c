package service

import (
	"testing"

	"pms-be-svc/internal/models"
	"pms-be-svc/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Building{},
		&models.Renter{},
		&models.Apartment{},
		&models.Payment{},
		&models.PaymentConfirmation{},
		&models.MaintenanceRequest{},
		&models.JobLog{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

// seedTenancy creates one building with an occupied and a vacant apartment
func seedTenancy(t *testing.T, db *gorm.DB) (*models.Building, *models.Renter, *models.Apartment, *models.Apartment) {
	building := &models.Building{Name: "Sunrise Tower", Address: "1 Main St"}
	require.NoError(t, db.Create(building).Error)

	renter := &models.Renter{FullName: "Alice Tan", Email: "alice@example.com"}
	require.NoError(t, db.Create(renter).Error)

	occupied := &models.Apartment{
		BuildingID:  building.ID,
		UnitNumber:  "A-101",
		MonthlyRent: 1200,
		RenterID:    &renter.ID,
	}
	require.NoError(t, db.Create(occupied).Error)

	vacant := &models.Apartment{
		BuildingID:  building.ID,
		UnitNumber:  "A-102",
		MonthlyRent: 1500,
	}
	require.NoError(t, db.Create(vacant).Error)

	return building, renter, occupied, vacant
}

func mustMonth(t *testing.T, s string) models.MonthKey {
	month, err := models.ParseMonthKey(s)
	require.NoError(t, err)
	return month
}
