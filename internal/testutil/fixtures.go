package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundsync/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAMC creates an asset management company with a unique code and slug.
func CreateTestAMC(t *testing.T, db *gorm.DB) *models.AssetManagementCompany {
	t.Helper()
	n := nextID()
	return CreateTestAMCWith(t, db, fmt.Sprintf("%d", 900+n), fmt.Sprintf("Test AMC %d", n))
}

// CreateTestAMCWith creates an asset management company with the given code and name.
// The slug is derived from the code so fixtures never collide.
func CreateTestAMCWith(t *testing.T, db *gorm.DB, code, name string) *models.AssetManagementCompany {
	t.Helper()

	amc := &models.AssetManagementCompany{
		Code: code,
		Name: name,
		Slug: fmt.Sprintf("test-amc-%s", code),
	}
	if err := db.Create(amc).Error; err != nil {
		t.Fatalf("failed to create test amc: %v", err)
	}
	return amc
}

// CreateTestCategory creates a category with a unique code and slug.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	n := nextID()
	return CreateTestCategoryWith(t, db, fmt.Sprintf("%d", 900+n), fmt.Sprintf("Test Category %d", n), categoryType)
}

// CreateTestCategoryWith creates a category with the given code, name and type.
func CreateTestCategoryWith(t *testing.T, db *gorm.DB, code, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Code: code,
		Name: name,
		Slug: fmt.Sprintf("test-category-%s", code),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestFund creates an open-end fund under the given AMC and category.
func CreateTestFund(t *testing.T, db *gorm.DB, amcID, categoryID uint) *models.Fund {
	t.Helper()
	n := nextID()
	return CreateTestFundWith(t, db, fmt.Sprintf("%d", 9000+n), fmt.Sprintf("Test Fund %d", n), amcID, categoryID, models.FundTypeOpenEnd)
}

// CreateTestFundWith creates a fund with the given code, name and fund type.
func CreateTestFundWith(t *testing.T, db *gorm.DB, code, name string, amcID, categoryID uint, fundType models.FundType) *models.Fund {
	t.Helper()

	inception := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	fund := &models.Fund{
		Code:          code,
		Name:          name,
		Slug:          fmt.Sprintf("test-fund-%s", code),
		InceptionDate: &inception,
		CategoryID:    categoryID,
		FundTypeID:    fundType,
		AMCID:         amcID,
	}
	if err := db.Create(fund).Error; err != nil {
		t.Fatalf("failed to create test fund: %v", err)
	}
	return fund
}

// CreateTestMarketCap creates a stub market cap record for the given fund and month.
func CreateTestMarketCap(t *testing.T, db *gorm.DB, fundID uint, code int64, month time.Time) *models.MarketCap {
	t.Helper()

	mc := &models.MarketCap{
		Code:   code,
		Month:  month,
		FundID: fundID,
	}
	if err := db.Create(mc).Error; err != nil {
		t.Fatalf("failed to create test market cap: %v", err)
	}
	return mc
}

// CreateTestFilledMarketCap creates a market cap record whose total is already known.
func CreateTestFilledMarketCap(t *testing.T, db *gorm.DB, fundID uint, code int64, month time.Time, total int64) *models.MarketCap {
	t.Helper()

	currency := models.DefaultCurrency
	mc := &models.MarketCap{
		Code:          code,
		Month:         month,
		FundID:        fundID,
		Total:         decimal.NewNullDecimal(decimal.NewFromInt(total)),
		TotalCurrency: &currency,
	}
	if err := db.Create(mc).Error; err != nil {
		t.Fatalf("failed to create test market cap: %v", err)
	}
	return mc
}
