package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/pagination"
	"fundsync/internal/services"
)

// CatalogHandler serves the reconciled AMCs, categories, funds and market caps.
type CatalogHandler struct {
	catalogService services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategoriesQuery holds the optional category type filter.
type ListCategoriesQuery struct {
	Type string `form:"type" binding:"omitempty,category_type"`
}

// ListFundsQuery holds the optional fund filters.
type ListFundsQuery struct {
	FundType uint   `form:"fund_type" binding:"omitempty,fund_type"`
	AMC      string `form:"amc" binding:"omitempty,slug"`
	Category string `form:"category" binding:"omitempty,slug"`
}

// ListAMCs handles GET /amcs.
// @Summary     List AMCs
// @Description List every asset management company ordered by name
// @Tags        catalog
// @Produce     json
// @Success     200 {object} map[string][]models.AssetManagementCompany "AMCs"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /amcs [get]
func (h *CatalogHandler) ListAMCs(c *gin.Context) {
	amcs, err := h.catalogService.ListAMCs()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"amcs": amcs})
}

// ListCategories handles GET /categories, optionally filtered by type
// (Islamic or Conventional).
// @Summary     List categories
// @Description List fund categories, optionally filtered by type
// @Tags        catalog
// @Produce     json
// @Param       type query string false "Category type" Enums(Islamic, Conventional)
// @Success     200 {object} map[string][]models.Category "Categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var query ListCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var categoryType *models.CategoryType
	if query.Type != "" {
		t := models.CategoryType(query.Type)
		categoryType = &t
	}

	categories, err := h.catalogService.ListCategories(categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListFunds handles GET /funds with pagination and the fund_type, amc and
// category filters. amc and category are slugs.
// @Summary     List funds
// @Description Get a paginated list of funds with their AMC and category
// @Tags        funds
// @Produce     json
// @Param       page      query int    false "Page number" minimum(1)
// @Param       page_size query int    false "Page size" minimum(1) maximum(100)
// @Param       fund_type query int    false "Fund type id"
// @Param       amc       query string false "AMC slug"
// @Param       category  query string false "Category slug"
// @Success     200 {object} pagination.PageResponse[models.Fund] "Funds"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds [get]
func (h *CatalogHandler) ListFunds(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var query ListFundsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.FundFilter{AMCSlug: query.AMC, CategorySlug: query.Category}
	if query.FundType != 0 {
		ft := models.FundType(query.FundType)
		filter.FundType = &ft
	}

	result, err := h.catalogService.ListFunds(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFund handles GET /funds/:slug.
// @Summary     Get a fund
// @Description Get one fund by slug with its AMC and category
// @Tags        funds
// @Produce     json
// @Param       slug path string true "Fund slug"
// @Success     200 {object} map[string]models.Fund "Fund"
// @Failure     400 {object} ErrorResponse "Invalid slug"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{slug} [get]
func (h *CatalogHandler) GetFund(c *gin.Context) {
	slug, err := parsePathSlug(c, "slug")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fund, err := h.catalogService.GetFundBySlug(slug)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fund": fund})
}

// GetFundMarketCaps handles GET /funds/:slug/market-caps, newest month first.
// @Summary     List fund market caps
// @Description Get a paginated list of monthly market-cap rows for a fund, newest month first
// @Tags        funds
// @Produce     json
// @Param       slug      path  string true  "Fund slug"
// @Param       page      query int    false "Page number" minimum(1)
// @Param       page_size query int    false "Page size" minimum(1) maximum(100)
// @Success     200 {object} pagination.PageResponse[models.MarketCap] "Market caps"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Fund not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/{slug}/market-caps [get]
func (h *CatalogHandler) GetFundMarketCaps(c *gin.Context) {
	slug, err := parsePathSlug(c, "slug")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.catalogService.GetFundMarketCaps(slug, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
