// Package pipeline runs one sync: every configured report tab is fetched,
// parsed, reconciled and committed in turn, then the newest market-cap stubs
// are filled from their detail pages. A failing tab or code is recorded in the
// result and the run moves on; only a failure to start is returned as an error.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fundsync/internal/config"
	apperrors "fundsync/internal/errors"
	"fundsync/internal/logger"
	"fundsync/internal/scraper"
	"fundsync/internal/services"
)

// Source provides the pages a run reads.
type Source interface {
	FetchReport(ctx context.Context, tab string) (*goquery.Document, error)
	services.MarketCapSource
}

// Config controls which tabs a run covers and how stage 2 behaves.
type Config struct {
	Tabs                  []string
	ListingTab            string
	MarketCapLookbackDays int
	InsertBatchSize       int
	FillMarketCaps        bool
}

// Stage names the step of a run a UnitError came from.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageListing    Stage = "listing"
	StageReport     Stage = "report"
	StageFunds      Stage = "funds"
	StageMarketCaps Stage = "market_caps"
)

// UnitError is a failure contained to one tab, phase or market-cap code.
type UnitError struct {
	Tab     string `json:"tab,omitempty"`
	Stage   Stage  `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func newUnitError(tab string, stage Stage, err error) UnitError {
	return UnitError{Tab: tab, Stage: stage, Code: apperrors.CodeOf(err), Message: err.Error(), Err: err}
}

func (e UnitError) Error() string {
	if e.Tab != "" {
		return fmt.Sprintf("tab %s %s: %v", e.Tab, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// TabResult is the outcome of one report tab.
type TabResult struct {
	Tab         string                                 `json:"tab"`
	Month       string                                 `json:"month,omitempty"`
	Completed   bool                                   `json:"completed"`
	Counts      map[services.EntityKind]services.Tally `json:"counts"`
	Orphans     int                                    `json:"orphans"`
	UnknownAMCs []string                               `json:"unknown_amcs,omitempty"`
}

// RunResult contains the outcome of a sync run.
type RunResult struct {
	RunID      string               `json:"run_id"`
	StartedAt  time.Time            `json:"started_at"`
	Tabs       []TabResult          `json:"tabs"`
	MarketCaps *services.FillResult `json:"market_caps,omitempty"`
	Errors     []UnitError          `json:"errors"`
	Duration   time.Duration        `json:"-"`
}

// Syncer reconciles the source site into the store.
type Syncer struct {
	db     *gorm.DB
	source Source
	loader services.SnapshotLoader
	cfg    Config
	now    func() time.Time
}

// NewSyncer creates a new Syncer.
func NewSyncer(db *gorm.DB, source Source, cfg Config) *Syncer {
	return &Syncer{
		db:     db,
		source: source,
		loader: services.NewSnapshotLoader(),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run executes a single sync. Tabs run strictly in order; each tab's listing
// phase and fund phase commit separately. Stage 2 runs after every tab.
func (s *Syncer) Run(ctx context.Context) (*RunResult, error) {
	start := s.now()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating run id: %w", err)
	}

	log := logger.WithRun(id.String())
	result := &RunResult{RunID: id.String(), StartedAt: start.UTC(), Errors: []UnitError{}}
	log.Infow("Sync started", "tabs", s.cfg.Tabs)

	writer := services.NewWriter(s.cfg.InsertBatchSize, log)
	session := services.NewSession(s.loader, writer, log)

	for _, tab := range s.cfg.Tabs {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, newUnitError(tab, StageFetch, err))
			break
		}

		tabLog := log.With("tab", tab)
		tabResult, unitErr := s.runTab(ctx, session, tab, tabLog)
		result.Tabs = append(result.Tabs, tabResult)
		if unitErr != nil {
			tabLog.Errorw("Tab failed", "stage", unitErr.Stage, "code", unitErr.Code, "error", unitErr.Err)
			result.Errors = append(result.Errors, *unitErr)
		}
	}

	if s.cfg.FillMarketCaps && ctx.Err() == nil {
		s.fillMarketCaps(ctx, writer, log, result)
	}

	result.Duration = s.now().Sub(start)
	log.Infow("Sync completed", "duration", result.Duration.String(), "errors", len(result.Errors))
	return result, nil
}

func (s *Syncer) runTab(ctx context.Context, session *services.Session, tab string, log *zap.SugaredLogger) (TabResult, *UnitError) {
	tabResult := TabResult{Tab: tab}
	// Only decisions of committed phases are counted; a rolled-back phase wrote nothing.
	var committed []services.Decision
	fail := func(stage Stage, err error) (TabResult, *UnitError) {
		session.TakeDecisions()
		tabResult.Counts = services.TallyDecisions(committed)
		unitErr := newUnitError(tab, stage, err)
		return tabResult, &unitErr
	}

	doc, err := s.source.FetchReport(ctx, tab)
	if err != nil {
		return fail(StageFetch, err)
	}

	if tab == s.cfg.ListingTab {
		listing := scraper.ParseListing(doc)
		log.Infow("Listing parsed", "amcs", len(listing.AMCs), "categories", len(listing.Categories))
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := session.Refresh(ctx, tx); err != nil {
				return err
			}
			if err := session.ReconcileAMCs(ctx, tx, listing.AMCs); err != nil {
				return err
			}
			if err := session.ReconcileCategories(ctx, tx, listing.Categories); err != nil {
				return err
			}
			return session.FlushListing(ctx, tx)
		})
		if err != nil {
			return fail(StageListing, err)
		}
		committed = append(committed, session.TakeDecisions()...)
	}

	report, err := scraper.ParseReport(doc, tab)
	if err != nil {
		return fail(StageReport, err)
	}
	tabResult.Month = report.Month.Format("2006-01-02")

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := session.Refresh(ctx, tx); err != nil {
			return err
		}
		folded := scraper.FoldEvents(report.Events, session.ResolveAMC)
		for _, name := range folded.UnknownAMCs {
			log.Warnw("AMC header not found", "name", name, "reason", apperrors.ErrLookupMiss.Code)
		}
		if len(folded.Orphans) > 0 {
			log.Warnw("Fund rows without AMC discarded", "count", len(folded.Orphans), "reason", apperrors.ErrLookupMiss.Code)
		}
		tabResult.Orphans = len(folded.Orphans)
		tabResult.UnknownAMCs = folded.UnknownAMCs

		if err := session.ReconcileFunds(ctx, tx, folded.Pairs, tab, report.Month); err != nil {
			return err
		}
		return session.FlushFunds(ctx, tx)
	})
	if err != nil {
		return fail(StageFunds, err)
	}
	committed = append(committed, session.TakeDecisions()...)

	tabResult.Counts = services.TallyDecisions(committed)
	tabResult.Completed = true
	return tabResult, nil
}

func (s *Syncer) fillMarketCaps(ctx context.Context, writer *services.Writer, log *zap.SugaredLogger, result *RunResult) {
	since := services.MarketCapLookbackStart(s.now(), s.cfg.MarketCapLookbackDays)
	svc := services.NewMarketCapService(s.db, s.source, writer, log)

	fill, err := svc.FillRecent(ctx, since)
	result.MarketCaps = fill
	if err != nil {
		log.Errorw("Market cap fill failed", "error", err)
		result.Errors = append(result.Errors, newUnitError("", StageMarketCaps, err))
		return
	}
	for _, f := range fill.Failures {
		unitErr := newUnitError("", StageMarketCaps, f.Err)
		unitErr.Message = fmt.Sprintf("code %d: %s", f.Code, unitErr.Message)
		result.Errors = append(result.Errors, unitErr)
	}
}

// ConfigFrom copies the sync settings out of the application configuration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Tabs:                  cfg.Tabs,
		ListingTab:            cfg.ListingTab,
		MarketCapLookbackDays: cfg.MarketCapLookbackDays,
		InsertBatchSize:       cfg.InsertBatchSize,
		FillMarketCaps:        cfg.FillMarketCaps,
	}
}

// NewSourceClient builds the HTTP client for the source site.
func NewSourceClient(cfg *config.Config) *scraper.Client {
	return scraper.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.SourceBaseURL, cfg.UserAgent)
}
