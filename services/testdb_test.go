package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lam3a/rush-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A file-backed DB: ":memory:" gives each pooled connection its own
	// empty database, so reads on a second connection (e.g. while a
	// transaction holds the first) would see no tables.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.Car{},
		&models.Service{},
		&models.AddOn{},
		&models.Package{},
		&models.Offer{},
		&models.Order{},
		&models.OrderAddOn{},
		&models.OrderStatusHistory{},
		&models.Review{},
		&models.Notification{},
		&models.DBChange{},
	))
	return db
}
