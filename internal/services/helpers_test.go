package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fundsync/internal/scraper"
)

var testMonth = time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, db *gorm.DB) *Session {
	t.Helper()
	log := zap.NewNop().Sugar()
	s := NewSession(NewSnapshotLoader(), NewWriter(2, log), log)
	if err := s.Refresh(context.Background(), db); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	return s
}

// runListing reconciles and flushes one listing in its own transaction.
func runListing(t *testing.T, db *gorm.DB, s *Session, amcs, categories []scraper.ListingEntry) {
	t.Helper()
	ctx := context.Background()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.Refresh(ctx, tx); err != nil {
			return err
		}
		if err := s.ReconcileAMCs(ctx, tx, amcs); err != nil {
			return err
		}
		if err := s.ReconcileCategories(ctx, tx, categories); err != nil {
			return err
		}
		return s.FlushListing(ctx, tx)
	})
	if err != nil {
		t.Fatalf("listing phase failed: %v", err)
	}
}

// runFunds folds events against the current AMCs, reconciles and flushes them.
func runFunds(t *testing.T, db *gorm.DB, s *Session, events []scraper.Event, tab string) scraper.Folded {
	t.Helper()
	ctx := context.Background()
	var folded scraper.Folded
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.Refresh(ctx, tx); err != nil {
			return err
		}
		folded = scraper.FoldEvents(events, s.ResolveAMC)
		if err := s.ReconcileFunds(ctx, tx, folded.Pairs, tab, testMonth); err != nil {
			return err
		}
		return s.FlushFunds(ctx, tx)
	})
	if err != nil {
		t.Fatalf("fund phase failed: %v", err)
	}
	return folded
}

func header(name string) scraper.Event {
	return scraper.Event{Kind: scraper.EventAMCHeader, AMCName: name}
}

func fundRow(code, name, category, inception, href string) scraper.Event {
	return scraper.Event{Kind: scraper.EventFundRow, Fund: scraper.FundRow{
		Code:          code,
		Name:          name,
		CategoryName:  category,
		InceptionDate: inception,
		DetailHref:    href,
	}}
}

func countActions(decisions []Decision, entity EntityKind, action Action) int {
	n := 0
	for _, d := range decisions {
		if d.Entity == entity && d.Action == action {
			n++
		}
	}
	return n
}
