package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/pagination"
	"fundsync/internal/services"
)

// --- mock catalog service ---

type mockCatalogService struct {
	listAMCsFn          func() ([]models.AssetManagementCompany, error)
	listCategoriesFn    func(categoryType *models.CategoryType) ([]models.Category, error)
	listFundsFn         func(filter services.FundFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Fund], error)
	getFundBySlugFn     func(slug string) (*models.Fund, error)
	getFundMarketCapsFn func(slug string, page pagination.PageRequest) (*pagination.PageResponse[models.MarketCap], error)
}

func (m *mockCatalogService) ListAMCs() ([]models.AssetManagementCompany, error) {
	if m.listAMCsFn != nil {
		return m.listAMCsFn()
	}
	return []models.AssetManagementCompany{}, nil
}

func (m *mockCatalogService) ListCategories(categoryType *models.CategoryType) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(categoryType)
	}
	return []models.Category{}, nil
}

func (m *mockCatalogService) ListFunds(filter services.FundFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Fund], error) {
	if m.listFundsFn != nil {
		return m.listFundsFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Fund{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCatalogService) GetFundBySlug(slug string) (*models.Fund, error) {
	if m.getFundBySlugFn != nil {
		return m.getFundBySlugFn(slug)
	}
	return &models.Fund{}, nil
}

func (m *mockCatalogService) GetFundMarketCaps(slug string, page pagination.PageRequest) (*pagination.PageResponse[models.MarketCap], error) {
	if m.getFundMarketCapsFn != nil {
		return m.getFundMarketCapsFn(slug, page)
	}
	resp := pagination.NewPageResponse([]models.MarketCap{}, 1, 20, 0)
	return &resp, nil
}

// verify interface compliance
var _ services.CatalogServicer = (*mockCatalogService)(nil)

func setupCatalogRouter(handler *CatalogHandler) *gin.Engine {
	r := gin.New()
	r.GET("/amcs", handler.ListAMCs)
	r.GET("/categories", handler.ListCategories)
	r.GET("/funds", handler.ListFunds)
	r.GET("/funds/:slug", handler.GetFund)
	r.GET("/funds/:slug/market-caps", handler.GetFundMarketCaps)
	return r
}

// --- tests ---

func TestCatalogHandler_ListAMCs(t *testing.T) {
	t.Run("returns 200 with amcs", func(t *testing.T) {
		svc := &mockCatalogService{
			listAMCsFn: func() ([]models.AssetManagementCompany, error) {
				return []models.AssetManagementCompany{
					{Base: models.Base{ID: 1}, Code: "1", Name: "ABL Asset Management Company Limited"},
				}, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/amcs", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		amcs := parseJSON(t, rec)["amcs"].([]interface{})
		if len(amcs) != 1 {
			t.Errorf("expected 1 amc, got %d", len(amcs))
		}
	})

	t.Run("returns 500 on service error", func(t *testing.T) {
		svc := &mockCatalogService{
			listAMCsFn: func() ([]models.AssetManagementCompany, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/amcs", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	t.Run("passes type filter to service", func(t *testing.T) {
		var captured *models.CategoryType
		svc := &mockCatalogService{
			listCategoriesFn: func(categoryType *models.CategoryType) ([]models.Category, error) {
				captured = categoryType
				return []models.Category{}, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/categories?type=Islamic", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured == nil || *captured != models.CategoryTypeIslamic {
			t.Errorf("expected Islamic filter, got %v", captured)
		}
	})

	t.Run("no filter passes nil", func(t *testing.T) {
		called := false
		svc := &mockCatalogService{
			listCategoriesFn: func(categoryType *models.CategoryType) ([]models.Category, error) {
				called = true
				if categoryType != nil {
					t.Errorf("expected nil filter, got %v", *categoryType)
				}
				return []models.Category{}, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		doRequest(r, "GET", "/categories", "")

		if !called {
			t.Error("expected service to be called")
		}
	})

	t.Run("returns 400 for unknown type", func(t *testing.T) {
		r := setupCatalogRouter(NewCatalogHandler(&mockCatalogService{}))

		rec := doRequest(r, "GET", "/categories?type=income", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCatalogHandler_ListFunds(t *testing.T) {
	t.Run("passes filters and pagination to service", func(t *testing.T) {
		var capturedFilter services.FundFilter
		var capturedPage pagination.PageRequest
		svc := &mockCatalogService{
			listFundsFn: func(filter services.FundFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Fund], error) {
				capturedFilter = filter
				capturedPage = page
				resp := pagination.NewPageResponse([]models.Fund{{Base: models.Base{ID: 7}, Code: "101"}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/funds?fund_type=2&amc=abl-asset-management&category=money-market&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedFilter.FundType == nil || *capturedFilter.FundType != models.FundTypeVoluntaryPension {
			t.Errorf("expected fund_type=2, got %v", capturedFilter.FundType)
		}
		if capturedFilter.AMCSlug != "abl-asset-management" || capturedFilter.CategorySlug != "money-market" {
			t.Errorf("unexpected slugs %+v", capturedFilter)
		}
		if capturedPage.Page != 2 || capturedPage.PageSize != 5 {
			t.Errorf("unexpected page %+v", capturedPage)
		}
		result := parseJSON(t, rec)
		if result["total_pages"].(float64) != 2 {
			t.Errorf("expected total_pages=2, got %v", result["total_pages"])
		}
	})

	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown_fund_type", query: "fund_type=9"},
		{name: "non_numeric_fund_type", query: "fund_type=open"},
		{name: "bad_amc_slug", query: "amc=ABL%20AMC"},
		{name: "page_size_too_large", query: "page_size=1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupCatalogRouter(NewCatalogHandler(&mockCatalogService{}))

			rec := doRequest(r, "GET", "/funds?"+tt.query, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 404 for unknown amc", func(t *testing.T) {
		svc := &mockCatalogService{
			listFundsFn: func(_ services.FundFilter, _ pagination.PageRequest) (*pagination.PageResponse[models.Fund], error) {
				return nil, apperrors.ErrAMCNotFound
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/funds?amc=missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "AMC_NOT_FOUND")
	})
}

func TestCatalogHandler_GetFund(t *testing.T) {
	t.Run("returns 200 with fund", func(t *testing.T) {
		svc := &mockCatalogService{
			getFundBySlugFn: func(slug string) (*models.Fund, error) {
				return &models.Fund{Base: models.Base{ID: 3}, Code: "101", Slug: slug, Name: "ABL Cash Fund"}, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/funds/abl-cash-fund", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		fund := parseJSON(t, rec)["fund"].(map[string]interface{})
		if fund["slug"] != "abl-cash-fund" {
			t.Errorf("expected slug abl-cash-fund, got %v", fund["slug"])
		}
	})

	t.Run("returns 404 when fund missing", func(t *testing.T) {
		svc := &mockCatalogService{
			getFundBySlugFn: func(_ string) (*models.Fund, error) {
				return nil, apperrors.ErrFundNotFound
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/funds/nope", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FUND_NOT_FOUND")
	})

	t.Run("returns 400 for malformed slug", func(t *testing.T) {
		r := setupCatalogRouter(NewCatalogHandler(&mockCatalogService{}))

		rec := doRequest(r, "GET", "/funds/Bad_Slug", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCatalogHandler_GetFundMarketCaps(t *testing.T) {
	t.Run("passes slug and pagination to service", func(t *testing.T) {
		var capturedSlug string
		var capturedPage pagination.PageRequest
		svc := &mockCatalogService{
			getFundMarketCapsFn: func(slug string, page pagination.PageRequest) (*pagination.PageResponse[models.MarketCap], error) {
				capturedSlug = slug
				capturedPage = page
				resp := pagination.NewPageResponse([]models.MarketCap{{Code: 5501}}, 1, 10, 1)
				return &resp, nil
			},
		}
		r := setupCatalogRouter(NewCatalogHandler(svc))

		rec := doRequest(r, "GET", "/funds/abl-cash-fund/market-caps?page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedSlug != "abl-cash-fund" || capturedPage.PageSize != 10 {
			t.Errorf("unexpected args slug=%s page=%+v", capturedSlug, capturedPage)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 market cap, got %d", len(data))
		}
	})
}
