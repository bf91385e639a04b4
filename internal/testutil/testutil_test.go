package testutil_test

import (
	"testing"
	"time"

	"fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{
		"mutual_funds_assetmanagementcompany",
		"mutual_funds_category",
		"mutual_funds_fund",
		"mutual_funds_marketcap",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}

	if err := db.Model(&models.FundTypeRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count fund types: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 seeded fund types, got %d", count)
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	testutil.CreateTestAMC(t, first)

	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	var count int64
	second.Model(&models.AssetManagementCompany{}).Count(&count)
	if count != 0 {
		t.Errorf("expected a fresh database, found %d AMCs", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	amc := testutil.CreateTestAMC(t, db)
	if amc.ID == 0 {
		t.Fatal("amc should have a non-zero ID")
	}

	category := testutil.CreateTestCategory(t, db, models.CategoryTypeIslamic)
	if category.Type != models.CategoryTypeIslamic {
		t.Errorf("expected Islamic category, got %s", category.Type)
	}

	fund := testutil.CreateTestFund(t, db, amc.ID, category.ID)
	if fund.AMCID != amc.ID || fund.CategoryID != category.ID {
		t.Errorf("fund references not set: %+v", fund)
	}

	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	stub := testutil.CreateTestMarketCap(t, db, fund.ID, 101, month)
	if !stub.IsStub() {
		t.Error("expected a stub market cap")
	}

	filled := testutil.CreateTestFilledMarketCap(t, db, fund.ID, 102, month, 5000)
	if filled.IsStub() {
		t.Error("expected a filled market cap")
	}
}

func TestAssertAppError(t *testing.T) {
	// AssertAppError should pass for matching codes.
	testutil.AssertAppError(t, errors.ErrNotFound, "NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
