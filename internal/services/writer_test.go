package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fundsync/internal/models"
	"fundsync/internal/testutil"
)

func TestWriter_InsertAMCs_Batches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	w := NewWriter(2, zap.NewNop().Sugar())
	rows := make([]models.AssetManagementCompany, 5)
	for i := range rows {
		rows[i] = models.AssetManagementCompany{
			Code: fmt.Sprintf("B%d", i),
			Name: fmt.Sprintf("Batch AMC %d", i),
			Slug: fmt.Sprintf("batch-amc-%d", i),
		}
	}

	testutil.AssertNoError(t, w.InsertAMCs(context.Background(), db, rows))

	var count int64
	db.Model(&models.AssetManagementCompany{}).Count(&count)
	if count != 5 {
		t.Errorf("expected 5 AMCs, got %d", count)
	}
}

func TestWriter_InsertEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	w := NewWriter(0, zap.NewNop().Sugar())
	if w.batchSize != DefaultInsertBatchSize {
		t.Errorf("batch size = %d, want default %d", w.batchSize, DefaultInsertBatchSize)
	}
	ctx := context.Background()
	testutil.AssertNoError(t, w.InsertAMCs(ctx, db, nil))
	testutil.AssertNoError(t, w.InsertCategories(ctx, db, nil))
	testutil.AssertNoError(t, w.InsertFunds(ctx, db, models.FundTypeETF, nil))
	testutil.AssertNoError(t, w.InsertMarketCapStubs(ctx, db, nil))
}

func TestWriter_Renames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	amc := testutil.CreateTestAMCWith(t, db, "A1", "Before")
	category := testutil.CreateTestCategoryWith(t, db, "C1", "Before", models.CategoryTypeConventional)
	fund := testutil.CreateTestFund(t, db, amc.ID, category.ID)

	fixed := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC)
	w := NewWriter(10, zap.NewNop().Sugar())
	w.now = func() time.Time { return fixed }
	ctx := context.Background()

	testutil.AssertNoError(t, w.UpdateAMCName(ctx, db, "A1", "After AMC"))
	testutil.AssertNoError(t, w.UpdateCategoryName(ctx, db, "C1", "After Category"))
	testutil.AssertNoError(t, w.UpdateFundName(ctx, db, fund.ID, "After Fund"))

	var gotAMC models.AssetManagementCompany
	db.First(&gotAMC, amc.ID)
	if gotAMC.Name != "After AMC" || !gotAMC.UpdatedAt.Equal(fixed) {
		t.Errorf("amc = %q updated %v", gotAMC.Name, gotAMC.UpdatedAt)
	}

	var gotCategory models.Category
	db.First(&gotCategory, category.ID)
	if gotCategory.Name != "After Category" {
		t.Errorf("category name = %q", gotCategory.Name)
	}

	var gotFund models.Fund
	db.First(&gotFund, fund.ID)
	if gotFund.Name != "After Fund" {
		t.Errorf("fund name = %q", gotFund.Name)
	}
}

func TestWriter_UpdateMarketCapFigures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	amc := testutil.CreateTestAMC(t, db)
	category := testutil.CreateTestCategory(t, db, models.CategoryTypeConventional)
	fund := testutil.CreateTestFund(t, db, amc.ID, category.ID)
	testutil.CreateTestMarketCap(t, db, fund.ID, 42, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))

	figures := &models.MarketCapFigures{
		FundName:    "Test Fund",
		Month:       testMonth,
		Cash:        decimal.NewFromInt(1500),
		Liabilities: decimal.NewFromInt(-250),
		Total:       decimal.NewFromInt(1250),
	}

	w := NewWriter(10, zap.NewNop().Sugar())
	found, err := w.UpdateMarketCapFigures(context.Background(), db, 42, figures)
	testutil.AssertNoError(t, err)
	if !found {
		t.Fatal("expected the row to be found")
	}

	var mc models.MarketCap
	db.Where("code = ?", 42).First(&mc)
	if mc.IsStub() {
		t.Fatal("row should no longer be a stub")
	}
	if !mc.Total.Decimal.Equal(decimal.NewFromInt(1250)) || !mc.Liabilities.Decimal.Equal(decimal.NewFromInt(-250)) {
		t.Errorf("amounts = total %s liabilities %s", mc.Total.Decimal, mc.Liabilities.Decimal)
	}
	if !mc.Equities.Valid || !mc.Equities.Decimal.IsZero() {
		t.Errorf("unset amounts should be stored as zero, got %+v", mc.Equities)
	}
	if mc.TotalCurrency == nil || *mc.TotalCurrency != models.DefaultCurrency {
		t.Errorf("currency = %v, want %s", mc.TotalCurrency, models.DefaultCurrency)
	}
	if !mc.Month.Equal(testMonth) {
		t.Errorf("month = %v, want %v", mc.Month, testMonth)
	}

	found, err = w.UpdateMarketCapFigures(context.Background(), db, 43, figures)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected no row for an unknown code")
	}
}
