package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
)

// EntityRef is the identifying columns of one AMC or category row.
type EntityRef struct {
	ID   uint
	Name string
	Code string
	Slug string
}

// EntityView indexes AMC or category rows by code and by display name.
type EntityView struct {
	byCode map[string]EntityRef
	byName map[string]EntityRef
	slugs  []string
}

// newEntityView builds a view from rows ordered by name then id. When two rows
// share a name the first one (lowest id) wins.
func newEntityView(refs []EntityRef) *EntityView {
	v := &EntityView{
		byCode: make(map[string]EntityRef, len(refs)),
		byName: make(map[string]EntityRef, len(refs)),
		slugs:  make([]string, 0, len(refs)),
	}
	for _, ref := range refs {
		v.byCode[ref.Code] = ref
		if _, dup := v.byName[ref.Name]; !dup {
			v.byName[ref.Name] = ref
		}
		v.slugs = append(v.slugs, ref.Slug)
	}
	return v
}

// ByCode looks a row up by its source code.
func (v *EntityView) ByCode(code string) (EntityRef, bool) {
	ref, ok := v.byCode[code]
	return ref, ok
}

// ByName looks a row up by exact display name.
func (v *EntityView) ByName(name string) (EntityRef, bool) {
	ref, ok := v.byName[name]
	return ref, ok
}

// Slugs returns the known slugs in snapshot order.
func (v *EntityView) Slugs() []string { return v.slugs }

// Len returns the number of rows in the view.
func (v *EntityView) Len() int { return len(v.byCode) }

// FundRef is the identifying columns of one fund row.
type FundRef struct {
	ID         uint
	Name       string
	Code       string
	Slug       string
	CategoryID uint
}

// FundView indexes funds by code and by the name~category secondary key.
type FundView struct {
	byCode         map[string]FundRef
	byNameCategory map[fundKey]FundRef
	slugs          []string
}

type fundKey struct {
	name       string
	categoryID uint
}

func newFundView(refs []FundRef) *FundView {
	v := &FundView{
		byCode:         make(map[string]FundRef, len(refs)),
		byNameCategory: make(map[fundKey]FundRef, len(refs)),
		slugs:          make([]string, 0, len(refs)),
	}
	for _, ref := range refs {
		v.byCode[ref.Code] = ref
		v.byNameCategory[fundKey{name: ref.Name, categoryID: ref.CategoryID}] = ref
		v.slugs = append(v.slugs, ref.Slug)
	}
	return v
}

// ByCode looks a fund up by its source code.
func (v *FundView) ByCode(code string) (FundRef, bool) {
	ref, ok := v.byCode[code]
	return ref, ok
}

// ByNameCategory looks a fund up by exact name within a category.
func (v *FundView) ByNameCategory(name string, categoryID uint) (FundRef, bool) {
	ref, ok := v.byNameCategory[fundKey{name: name, categoryID: categoryID}]
	return ref, ok
}

// Slugs returns the known fund slugs in snapshot order.
func (v *FundView) Slugs() []string { return v.slugs }

// Len returns the number of funds in the view.
func (v *FundView) Len() int { return len(v.byCode) }

// Snapshot is a point-in-time read of everything reconciliation decides against.
type Snapshot struct {
	AMCs           *EntityView
	Categories     *EntityView
	Funds          *FundView
	MarketCapCodes map[int64]struct{}
}

// HasMarketCap reports whether a market-cap row with this code exists.
func (s *Snapshot) HasMarketCap(code int64) bool {
	_, ok := s.MarketCapCodes[code]
	return ok
}

// snapshotLoader reads snapshots through whatever handle it is given, so the
// reads share the caller's transaction.
type snapshotLoader struct{}

// NewSnapshotLoader creates a new SnapshotLoader.
func NewSnapshotLoader() SnapshotLoader {
	return snapshotLoader{}
}

// Load reads the reference data for all entity types.
func (snapshotLoader) Load(ctx context.Context, tx *gorm.DB) (*Snapshot, error) {
	db := tx.WithContext(ctx)

	var amcs []EntityRef
	if err := db.Model(&models.AssetManagementCompany{}).
		Select("id", "name", "code", "slug").
		Order("name, id").
		Find(&amcs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []EntityRef
	if err := db.Model(&models.Category{}).
		Select("id", "name", "code", "slug").
		Order("name, id").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var funds []FundRef
	if err := db.Model(&models.Fund{}).
		Select("id", "name", "code", "slug", "category_id").
		Order("name, id").
		Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var codes []int64
	if err := db.Model(&models.MarketCap{}).Order("id").Pluck("code", &codes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	mcCodes := make(map[int64]struct{}, len(codes))
	for _, c := range codes {
		mcCodes[c] = struct{}{}
	}

	return &Snapshot{
		AMCs:           newEntityView(amcs),
		Categories:     newEntityView(categories),
		Funds:          newFundView(funds),
		MarketCapCodes: mcCodes,
	}, nil
}

// MarketCapLookbackStart returns the first day of the month that contains
// now minus lookbackDays, in UTC.
func MarketCapLookbackStart(now time.Time, lookbackDays int) time.Time {
	t := now.UTC().AddDate(0, 0, -lookbackDays)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

type marketCapKey struct {
	Code   int64
	Month  time.Time
	FundID uint
}

// RecentMarketCapCodes returns, for every fund with a market-cap row dated on
// or after since, the code of its newest row (lowest code on ties), ordered
// newest month first.
func RecentMarketCapCodes(ctx context.Context, db *gorm.DB, since time.Time) ([]int64, error) {
	var rows []marketCapKey
	if err := db.WithContext(ctx).Model(&models.MarketCap{}).
		Select("code", "month", "fund_id").
		Where("month >= ?", since.UTC()).
		Order("fund_id, month DESC, code").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Rows arrive grouped by fund with the winner first.
	latest := make([]marketCapKey, 0)
	for i, row := range rows {
		if i > 0 && rows[i-1].FundID == row.FundID {
			continue
		}
		latest = append(latest, row)
	}

	sort.SliceStable(latest, func(i, j int) bool {
		if !latest[i].Month.Equal(latest[j].Month) {
			return latest[i].Month.After(latest[j].Month)
		}
		return latest[i].Code < latest[j].Code
	})

	codes := make([]int64, len(latest))
	for i, row := range latest {
		codes[i] = row.Code
	}
	return codes, nil
}
