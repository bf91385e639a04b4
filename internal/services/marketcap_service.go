package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "fundsync/internal/errors"
)

// CodeError is a market-cap code that could not be filled.
type CodeError struct {
	Code int64 `json:"code"`
	Err  error `json:"-"`
}

// FillResult summarises one stage 2 pass.
type FillResult struct {
	Attempted int         `json:"attempted"`
	Filled    int         `json:"filled"`
	Failures  []CodeError `json:"failures,omitempty"`
}

// marketCapService fills market-cap stubs from the fund detail pages.
type marketCapService struct {
	db     *gorm.DB
	source MarketCapSource
	writer *Writer
	log    *zap.SugaredLogger
}

// NewMarketCapService creates a new MarketCapServicer.
func NewMarketCapService(db *gorm.DB, source MarketCapSource, writer *Writer, log *zap.SugaredLogger) MarketCapServicer {
	return &marketCapService{db: db, source: source, writer: writer, log: log}
}

// FillRecent fetches and stores the figures for the newest market-cap code of
// every fund reported on or after since. A code that fails is logged and
// recorded; the others still go through. All updates commit together.
func (s *marketCapService) FillRecent(ctx context.Context, since time.Time) (*FillResult, error) {
	codes, err := RecentMarketCapCodes(ctx, s.db, since)
	if err != nil {
		return nil, err
	}

	s.log.Infow("Updating Market Caps", "codes", len(codes), "since", since.Format("2006-01-02"))
	result := &FillResult{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, code := range codes {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Attempted++

			figures, err := s.source.FetchMarketCapFigures(ctx, code)
			if err != nil {
				s.log.Errorw("Market cap fetch failed", "code", code, "error", err)
				result.Failures = append(result.Failures, CodeError{Code: code, Err: err})
				continue
			}

			found, err := s.writer.UpdateMarketCapFigures(ctx, tx, code, figures)
			if err != nil {
				return err
			}
			if !found {
				missing := apperrors.WithMessage(apperrors.ErrLookupMiss, "market cap row disappeared")
				s.log.Warnw("Market cap row not found", "code", code)
				result.Failures = append(result.Failures, CodeError{Code: code, Err: missing})
				continue
			}
			result.Filled++
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	s.log.Infow("Market caps updated", "filled", result.Filled, "failed", len(result.Failures))
	return result, nil
}
