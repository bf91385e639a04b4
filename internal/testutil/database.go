// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fundsync/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.AssetManagementCompany{},
	&models.Category{},
	&models.FundTypeRecord{},
	&models.Fund{},
	&models.MarketCap{},
}

var dbCounter atomic.Int64

// SetupTestDB creates an in-memory SQLite database with all models migrated
// and the fund type lookup rows seeded. Every call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	fundTypes := []models.FundTypeRecord{
		{ID: models.FundTypeOpenEnd, Name: models.FundTypeOpenEnd.String()},
		{ID: models.FundTypeVoluntaryPension, Name: models.FundTypeVoluntaryPension.String()},
		{ID: models.FundTypeClosedEnd, Name: models.FundTypeClosedEnd.String()},
		{ID: models.FundTypeDedicatedEquity, Name: models.FundTypeDedicatedEquity.String()},
		{ID: models.FundTypeETF, Name: models.FundTypeETF.String()},
	}
	if err := db.Create(&fundTypes).Error; err != nil {
		t.Fatalf("failed to seed fund types: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
