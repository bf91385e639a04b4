package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/pagination"
)

// FundFilter holds optional filter parameters for listing funds.
type FundFilter struct {
	FundType     *models.FundType
	AMCSlug      string
	CategorySlug string
}

// catalogService serves read-only views of the reconciled data.
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(db *gorm.DB) CatalogServicer {
	return &catalogService{db: db}
}

// ListAMCs returns every AMC ordered by name.
func (s *catalogService) ListAMCs() ([]models.AssetManagementCompany, error) {
	var amcs []models.AssetManagementCompany
	if err := s.db.Order("name, id").Find(&amcs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return amcs, nil
}

// ListCategories returns every category, optionally restricted to one type.
func (s *catalogService) ListCategories(categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Order("name, id")
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// ListFunds retrieves a paginated list of funds matching the filter.
func (s *catalogService) ListFunds(filter FundFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Fund], error) {
	base := s.db.Model(&models.Fund{})
	if filter.FundType != nil {
		base = base.Where("fund_type_id = ?", *filter.FundType)
	}
	if filter.AMCSlug != "" {
		amc, err := s.amcBySlug(filter.AMCSlug)
		if err != nil {
			return nil, err
		}
		base = base.Where("amc_id = ?", amc.ID)
	}
	if filter.CategorySlug != "" {
		var category models.Category
		if err := s.db.Where("slug = ?", filter.CategorySlug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrNotFound, "category not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		base = base.Where("category_id = ?", category.ID)
	}

	result, err := pagination.Find[models.Fund](base, page, "name, id", "AMC", "Category")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

func (s *catalogService) amcBySlug(slug string) (*models.AssetManagementCompany, error) {
	var amc models.AssetManagementCompany
	if err := s.db.Where("slug = ?", slug).First(&amc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAMCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &amc, nil
}

// GetFundBySlug retrieves one fund with its AMC and category.
func (s *catalogService) GetFundBySlug(slug string) (*models.Fund, error) {
	var fund models.Fund
	if err := s.db.Preload("AMC").Preload("Category").Where("slug = ?", slug).First(&fund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFundNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fund, nil
}

// GetFundMarketCaps retrieves a fund's market-cap history, newest month first.
func (s *catalogService) GetFundMarketCaps(slug string, page pagination.PageRequest) (*pagination.PageResponse[models.MarketCap], error) {
	fund, err := s.GetFundBySlug(slug)
	if err != nil {
		return nil, err
	}

	base := s.db.Model(&models.MarketCap{}).Where("fund_id = ?", fund.ID)
	result, err := pagination.Find[models.MarketCap](base, page, "month DESC, code")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}
