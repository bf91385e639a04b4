package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
)

// DefaultInsertBatchSize caps the rows sent in one multi-row INSERT.
const DefaultInsertBatchSize = 500

// Writer issues the pipeline's writes. Inserts are batched per entity type;
// updates go out one statement per row as soon as they are decided. Every
// method writes through the transaction it is handed.
type Writer struct {
	batchSize int
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NewWriter creates a new Writer.
func NewWriter(batchSize int, log *zap.SugaredLogger) *Writer {
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}
	return &Writer{batchSize: batchSize, log: log, now: time.Now}
}

// InsertAMCs writes staged AMCs.
func (w *Writer) InsertAMCs(ctx context.Context, tx *gorm.DB, rows []models.AssetManagementCompany) error {
	w.log.Infow("Inserting AMCs", "count", len(rows))
	if len(rows) == 0 {
		return nil
	}
	return w.createInBatches(ctx, tx, &rows)
}

// InsertCategories writes staged categories.
func (w *Writer) InsertCategories(ctx context.Context, tx *gorm.DB, rows []models.Category) error {
	w.log.Infow("Inserting Categories", "count", len(rows))
	if len(rows) == 0 {
		return nil
	}
	return w.createInBatches(ctx, tx, &rows)
}

// InsertFunds writes staged funds.
func (w *Writer) InsertFunds(ctx context.Context, tx *gorm.DB, fundType models.FundType, rows []models.Fund) error {
	w.log.Infow("Inserting Funds", "count", len(rows), "fund_type", fundType.String())
	if len(rows) == 0 {
		return nil
	}
	return w.createInBatches(ctx, tx, &rows)
}

// InsertMarketCapStubs writes market-cap rows that only carry code, month and fund.
func (w *Writer) InsertMarketCapStubs(ctx context.Context, tx *gorm.DB, rows []models.MarketCap) error {
	w.log.Infow("Inserting Market Cap stubs", "count", len(rows))
	if len(rows) == 0 {
		return nil
	}
	return w.createInBatches(ctx, tx, &rows)
}

func (w *Writer) createInBatches(ctx context.Context, tx *gorm.DB, rows interface{}) error {
	if err := tx.WithContext(ctx).CreateInBatches(rows, w.batchSize).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateAMCName renames the AMC with the given code.
func (w *Writer) UpdateAMCName(ctx context.Context, tx *gorm.DB, code, name string) error {
	w.log.Infow("Updating AMC", "code", code, "name", name)
	return w.rename(ctx, tx, &models.AssetManagementCompany{}, "code = ?", code, name)
}

// UpdateCategoryName renames the category with the given code.
func (w *Writer) UpdateCategoryName(ctx context.Context, tx *gorm.DB, code, name string) error {
	w.log.Infow("Updating Category", "code", code, "name", name)
	return w.rename(ctx, tx, &models.Category{}, "code = ?", code, name)
}

// UpdateFundName renames the fund with the given id.
func (w *Writer) UpdateFundName(ctx context.Context, tx *gorm.DB, id uint, name string) error {
	w.log.Infow("Updating Fund", "id", id, "name", name)
	return w.rename(ctx, tx, &models.Fund{}, "id = ?", id, name)
}

func (w *Writer) rename(ctx context.Context, tx *gorm.DB, model interface{}, where string, key interface{}, name string) error {
	err := tx.WithContext(ctx).Model(model).
		Where(where, key).
		UpdateColumns(map[string]interface{}{"name": name, "updated_at": w.now().UTC()}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateMarketCapFigures fills the market-cap row with the given code. It
// returns false when no row has that code.
func (w *Writer) UpdateMarketCapFigures(ctx context.Context, tx *gorm.DB, code int64, figures *models.MarketCapFigures) (bool, error) {
	w.log.Infow("Updating Market Cap", "code", code, "fund", figures.FundName, "month", figures.Month.Format("2006-01-02"))
	result := tx.WithContext(ctx).Model(&models.MarketCap{}).
		Where("code = ?", code).
		UpdateColumns(figures.Columns(w.now().UTC()))
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}
