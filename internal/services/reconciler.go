package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/scraper"
	"fundsync/internal/slug"
)

// EntityKind names the table a decision applies to.
type EntityKind string

const (
	EntityAMC       EntityKind = "amc"
	EntityCategory  EntityKind = "category"
	EntityFund      EntityKind = "fund"
	EntityMarketCap EntityKind = "market_cap"
)

// Action is what reconciliation decided to do with one scraped entity.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionNoop   Action = "noop"
	ActionSkip   Action = "skip"
)

// Decision records the outcome for one scraped entity. Reason carries the
// AppError code for skips.
type Decision struct {
	Entity EntityKind `json:"entity"`
	Action Action     `json:"action"`
	Code   string     `json:"code"`
	Name   string     `json:"name,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// Tally counts decisions by action for one entity kind.
type Tally struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// TallyDecisions groups decisions by entity kind.
func TallyDecisions(decisions []Decision) map[EntityKind]Tally {
	out := make(map[EntityKind]Tally)
	for _, d := range decisions {
		t := out[d.Entity]
		switch d.Action {
		case ActionInsert:
			t.Inserted++
		case ActionUpdate:
			t.Updated++
		case ActionNoop:
			t.Unchanged++
		case ActionSkip:
			t.Skipped++
		}
		out[d.Entity] = t
	}
	return out
}

const inceptionLayout = "January 2, 2006"

// fundNameFixes corrects known artifacts in fund names as printed by the report.
var fundNameFixes = strings.NewReplacer("FundClass", "Fund Class")

// pendingStub is a market-cap stub whose fund may not have an id yet.
type pendingStub struct {
	code     int64
	month    time.Time
	fundID   uint
	fundCode string
}

// Session reconciles scraped entities against a snapshot of the store for the
// length of one run. It owns the slug sets, the staged inserts and the
// decisions made so far. Reads and writes go through the transaction passed
// to each call; Refresh must be called after every flush.
type Session struct {
	loader SnapshotLoader
	writer *Writer
	log    *zap.SugaredLogger
	now    func() time.Time

	snapshot      *Snapshot
	amcSlugs      *slug.Set
	categorySlugs *slug.Set
	fundSlugs     *slug.Set

	// codes staged since the last refresh count as known
	stagedAMCs       map[string]struct{}
	stagedCategories map[string]struct{}
	stagedFunds      map[string]struct{}
	stagedStubs      map[int64]struct{}

	amcBatch      []models.AssetManagementCompany
	categoryBatch []models.Category
	fundBatch     []models.Fund
	fundBatchType models.FundType
	stubBatch     []pendingStub

	decisions []Decision
}

// NewSession creates a reconciliation session. Refresh must be called before
// the first reconcile call.
func NewSession(loader SnapshotLoader, writer *Writer, log *zap.SugaredLogger) *Session {
	return &Session{loader: loader, writer: writer, log: log, now: time.Now}
}

// Refresh reloads the snapshot and slug sets, discarding anything staged.
func (s *Session) Refresh(ctx context.Context, tx *gorm.DB) error {
	snap, err := s.loader.Load(ctx, tx)
	if err != nil {
		return err
	}
	s.snapshot = snap
	s.amcSlugs = slug.NewSet(snap.AMCs.Slugs()...)
	s.categorySlugs = slug.NewSet(snap.Categories.Slugs()...)
	s.fundSlugs = slug.NewSet(snap.Funds.Slugs()...)
	s.stagedAMCs = make(map[string]struct{})
	s.stagedCategories = make(map[string]struct{})
	s.stagedFunds = make(map[string]struct{})
	s.stagedStubs = make(map[int64]struct{})
	s.amcBatch = nil
	s.categoryBatch = nil
	s.fundBatch = nil
	s.stubBatch = nil
	return nil
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() *Snapshot { return s.snapshot }

// Decisions returns every decision made since the last TakeDecisions.
func (s *Session) Decisions() []Decision { return s.decisions }

// TakeDecisions returns and clears the recorded decisions.
func (s *Session) TakeDecisions() []Decision {
	out := s.decisions
	s.decisions = nil
	return out
}

// ResolveAMC finds an AMC id by exact display name.
func (s *Session) ResolveAMC(name string) (uint, bool) {
	ref, ok := s.snapshot.AMCs.ByName(name)
	return ref.ID, ok
}

func (s *Session) record(d Decision) {
	s.decisions = append(s.decisions, d)
}

func (s *Session) skip(entity EntityKind, code, name string, err error) {
	reason := apperrors.CodeOf(err)
	s.log.Warnw("Skipping entity", "entity", entity, "code", code, "name", name, "reason", reason, "error", err)
	s.record(Decision{Entity: entity, Action: ActionSkip, Code: code, Name: name, Reason: reason})
}

// listingTarget binds the per-type pieces reconcileListing needs.
type listingTarget struct {
	kind   EntityKind
	view   *EntityView
	slugs  *slug.Set
	staged map[string]struct{}
	update func(ctx context.Context, tx *gorm.DB, code, name string) error
	stage  func(entry scraper.ListingEntry, slug string, now time.Time)
}

func (s *Session) reconcileListing(ctx context.Context, tx *gorm.DB, entries []scraper.ListingEntry, target listingTarget) error {
	now := s.now().UTC()
	for _, e := range entries {
		if ref, ok := target.view.ByCode(e.Code); ok {
			if ref.Name == e.Name {
				s.record(Decision{Entity: target.kind, Action: ActionNoop, Code: e.Code, Name: e.Name})
				continue
			}
			if err := target.update(ctx, tx, e.Code, e.Name); err != nil {
				return err
			}
			s.record(Decision{Entity: target.kind, Action: ActionUpdate, Code: e.Code, Name: e.Name})
			continue
		}

		if _, ok := target.staged[e.Code]; ok {
			s.record(Decision{Entity: target.kind, Action: ActionNoop, Code: e.Code, Name: e.Name})
			continue
		}

		assigned, err := slug.Assign(e.Name, target.slugs)
		if err != nil {
			s.skip(target.kind, e.Code, e.Name, apperrors.Wrap(apperrors.ErrUnsluggable, err))
			continue
		}
		target.staged[e.Code] = struct{}{}
		target.stage(e, assigned, now)
		s.record(Decision{Entity: target.kind, Action: ActionInsert, Code: e.Code, Name: e.Name})
	}
	return nil
}

// ReconcileAMCs renames known AMCs whose name changed and stages unknown ones.
func (s *Session) ReconcileAMCs(ctx context.Context, tx *gorm.DB, entries []scraper.ListingEntry) error {
	return s.reconcileListing(ctx, tx, entries, listingTarget{
		kind:   EntityAMC,
		view:   s.snapshot.AMCs,
		slugs:  s.amcSlugs,
		staged: s.stagedAMCs,
		update: s.writer.UpdateAMCName,
		stage: func(e scraper.ListingEntry, slug string, now time.Time) {
			s.amcBatch = append(s.amcBatch, models.AssetManagementCompany{
				Base: models.Base{CreatedAt: now, UpdatedAt: now},
				Code: e.Code,
				Name: e.Name,
				Slug: slug,
			})
		},
	})
}

// ReconcileCategories renames known categories whose name changed and stages unknown ones.
func (s *Session) ReconcileCategories(ctx context.Context, tx *gorm.DB, entries []scraper.ListingEntry) error {
	return s.reconcileListing(ctx, tx, entries, listingTarget{
		kind:   EntityCategory,
		view:   s.snapshot.Categories,
		slugs:  s.categorySlugs,
		staged: s.stagedCategories,
		update: s.writer.UpdateCategoryName,
		stage: func(e scraper.ListingEntry, slug string, now time.Time) {
			s.categoryBatch = append(s.categoryBatch, models.Category{
				Base: models.Base{CreatedAt: now, UpdatedAt: now},
				Code: e.Code,
				Name: e.Name,
				Slug: slug,
				Type: models.CategoryTypeFor(e.Name),
			})
		},
	})
}

// FlushListing inserts staged AMCs and categories, then refreshes the session.
func (s *Session) FlushListing(ctx context.Context, tx *gorm.DB) error {
	if err := s.writer.InsertAMCs(ctx, tx, s.amcBatch); err != nil {
		return err
	}
	if err := s.writer.InsertCategories(ctx, tx, s.categoryBatch); err != nil {
		return err
	}
	return s.Refresh(ctx, tx)
}

// ReconcileFunds decides every fund row of one report tab. Rows whose category
// is unknown are skipped. Known funds may be renamed; unknown funds are staged
// with the tab's fund type. A row's detail link stages a market-cap stub for
// the report month when its code is new.
func (s *Session) ReconcileFunds(ctx context.Context, tx *gorm.DB, pairs []scraper.FundPair, tab string, month time.Time) error {
	fundType, ok := models.FundTypeForTab(tab)
	if !ok {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown report tab %q", tab))
	}
	s.fundBatchType = fundType
	now := s.now().UTC()

	for _, pair := range pairs {
		row := pair.Row

		category, ok := s.snapshot.Categories.ByName(row.CategoryName)
		if !ok {
			s.skip(EntityFund, row.Code, row.Name,
				apperrors.WithMessage(apperrors.ErrLookupMiss, fmt.Sprintf("category %q not found", row.CategoryName)))
			continue
		}

		name := fundNameFixes.Replace(row.Name)
		stub := pendingStub{fundCode: row.Code, month: month}
		hasFund := true

		ref, known := s.snapshot.Funds.ByCode(row.Code)
		if !known {
			ref, known = s.snapshot.Funds.ByNameCategory(name, category.ID)
		}
		if !known && name != row.Name {
			// Rows stored before the name fix keep the raw spelling.
			ref, known = s.snapshot.Funds.ByNameCategory(row.Name, category.ID)
		}

		switch {
		case known:
			stub.fundID = ref.ID
			if err := s.reconcileKnownFund(ctx, tx, ref, name); err != nil {
				return err
			}
		case row.Code == "":
			hasFund = false
			s.skip(EntityFund, row.Code, row.Name, apperrors.WithMessage(apperrors.ErrInvalidInput, "fund row has no code"))
		default:
			if _, staged := s.stagedFunds[row.Code]; staged {
				s.record(Decision{Entity: EntityFund, Action: ActionNoop, Code: row.Code, Name: name})
				break
			}
			fund, err := s.newFund(row, name, category.ID, pair.AMC.ID, fundType, now)
			if err != nil {
				hasFund = false
				s.skip(EntityFund, row.Code, row.Name, err)
				break
			}
			s.stagedFunds[row.Code] = struct{}{}
			s.fundBatch = append(s.fundBatch, *fund)
			s.record(Decision{Entity: EntityFund, Action: ActionInsert, Code: row.Code, Name: name})
		}

		if hasFund {
			s.stageStub(row, stub)
		}
	}
	return nil
}

func (s *Session) reconcileKnownFund(ctx context.Context, tx *gorm.DB, ref FundRef, name string) error {
	if name == ref.Name {
		s.record(Decision{Entity: EntityFund, Action: ActionNoop, Code: ref.Code, Name: name})
		return nil
	}
	if err := s.writer.UpdateFundName(ctx, tx, ref.ID, name); err != nil {
		return err
	}
	s.record(Decision{Entity: EntityFund, Action: ActionUpdate, Code: ref.Code, Name: name})
	return nil
}

func (s *Session) newFund(row scraper.FundRow, name string, categoryID, amcID uint, fundType models.FundType, now time.Time) (*models.Fund, error) {
	assigned, err := slug.Assign(name, s.fundSlugs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnsluggable, err)
	}

	fund := &models.Fund{
		Base:       models.Base{CreatedAt: now, UpdatedAt: now},
		Code:       row.Code,
		Name:       name,
		Slug:       assigned,
		CategoryID: categoryID,
		FundTypeID: fundType,
		AMCID:      amcID,
	}
	if row.InceptionDate != "" {
		inception, err := time.Parse(inceptionLayout, row.InceptionDate)
		if err != nil {
			s.log.Warnw("Unparsable inception date", "code", row.Code, "value", row.InceptionDate, "error", err)
		} else {
			fund.InceptionDate = &inception
		}
	}
	return fund, nil
}

func (s *Session) stageStub(row scraper.FundRow, stub pendingStub) {
	if row.DetailHref == "" {
		return
	}
	code, ok := scraper.ExtractDetailCode(row.DetailHref)
	if !ok {
		s.log.Warnw("Detail link has no code", "fund", row.Code, "href", row.DetailHref)
		return
	}
	if s.snapshot.HasMarketCap(code) {
		return
	}
	if _, staged := s.stagedStubs[code]; staged {
		return
	}
	stub.code = code
	s.stagedStubs[code] = struct{}{}
	s.stubBatch = append(s.stubBatch, stub)
}

// FlushFunds inserts staged funds, refreshes to learn their ids, then inserts
// the market-cap stubs.
func (s *Session) FlushFunds(ctx context.Context, tx *gorm.DB) error {
	stubs := s.stubBatch
	if err := s.writer.InsertFunds(ctx, tx, s.fundBatchType, s.fundBatch); err != nil {
		return err
	}
	if err := s.Refresh(ctx, tx); err != nil {
		return err
	}

	now := s.now().UTC()
	rows := make([]models.MarketCap, 0, len(stubs))
	for _, stub := range stubs {
		fundID := stub.fundID
		if fundID == 0 {
			ref, ok := s.snapshot.Funds.ByCode(stub.fundCode)
			if !ok {
				s.skip(EntityMarketCap, fmt.Sprint(stub.code), stub.fundCode,
					apperrors.WithMessage(apperrors.ErrLookupMiss, "fund for market cap stub not found"))
				continue
			}
			fundID = ref.ID
		}
		rows = append(rows, models.MarketCap{
			Base:   models.Base{CreatedAt: now, UpdatedAt: now},
			Code:   stub.code,
			Month:  stub.month,
			FundID: fundID,
		})
		s.record(Decision{Entity: EntityMarketCap, Action: ActionInsert, Code: fmt.Sprint(stub.code), Name: stub.fundCode})
	}

	if err := s.writer.InsertMarketCapStubs(ctx, tx, rows); err != nil {
		return err
	}
	for _, row := range rows {
		s.snapshot.MarketCapCodes[row.Code] = struct{}{}
	}
	return nil
}
