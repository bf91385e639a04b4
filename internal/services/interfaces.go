package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fundsync/internal/models"
	"fundsync/internal/pagination"
)

// SnapshotLoader reads the reference data reconciliation decides against.
type SnapshotLoader interface {
	Load(ctx context.Context, tx *gorm.DB) (*Snapshot, error)
}

// MarketCapSource provides the parsed figures behind a market-cap code.
type MarketCapSource interface {
	FetchMarketCapFigures(ctx context.Context, code int64) (*models.MarketCapFigures, error)
}

// MarketCapServicer defines the contract for filling market-cap stubs.
type MarketCapServicer interface {
	FillRecent(ctx context.Context, since time.Time) (*FillResult, error)
}

// CatalogServicer defines the contract for the read-only catalog.
type CatalogServicer interface {
	ListAMCs() ([]models.AssetManagementCompany, error)
	ListCategories(categoryType *models.CategoryType) ([]models.Category, error)
	ListFunds(filter FundFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Fund], error)
	GetFundBySlug(slug string) (*models.Fund, error)
	GetFundMarketCaps(slug string, page pagination.PageRequest) (*pagination.PageResponse[models.MarketCap], error)
}
