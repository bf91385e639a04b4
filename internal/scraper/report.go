package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/textnorm"
)

// PensionTab is the voluntary pension funds tab, whose table carries an extra
// column before the category.
const PensionTab = "02"

const reportMonthLayout = "January 2006"

// EventKind classifies one report table row.
type EventKind int

const (
	EventSkip EventKind = iota
	EventAMCHeader
	EventFundRow
)

func (k EventKind) String() string {
	switch k {
	case EventAMCHeader:
		return "amc_header"
	case EventFundRow:
		return "fund_row"
	default:
		return "skip"
	}
}

// FundRow is the raw content of one fund-data row.
type FundRow struct {
	Code          string
	Name          string
	CategoryName  string
	InceptionDate string
	DetailHref    string
}

// Event is one classified row. AMCName is set for headers, Fund for fund rows
// and Reason for skipped rows.
type Event struct {
	Kind    EventKind
	AMCName string
	Fund    FundRow
	Reason  string
}

// Report is a parsed report page for one tab.
type Report struct {
	Tab    string
	Month  time.Time
	Events []Event
}

// ParseReport reads the report table: the reporting month from the header row,
// then one event per remaining row.
func ParseReport(doc *goquery.Document, tab string) (*Report, error) {
	table := doc.Find("table.mydata").First()
	if table.Length() == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrReportStructure, "report table not found")
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrReportStructure, "report table has no rows")
	}

	month, err := parseReportMonth(rows.First())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportStructure, err)
	}

	return &Report{
		Tab:    tab,
		Month:  month,
		Events: ClassifyRows(rows.Slice(1, rows.Length()), tab),
	}, nil
}

// parseReportMonth reads "August 2024 (Rs. in million)" from the header row's last cell.
func parseReportMonth(header *goquery.Selection) (time.Time, error) {
	cells := header.Find("td")
	if cells.Length() == 0 {
		return time.Time{}, fmt.Errorf("header row has no cells")
	}
	raw := cells.Last().Text()
	text, _, _ := strings.Cut(raw, "(")
	month, err := time.Parse(reportMonthLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing report month %q: %w", strings.TrimSpace(raw), err)
	}
	return month, nil
}

// ClassifyRows maps table rows (header excluded) to events in row order.
func ClassifyRows(rows *goquery.Selection, tab string) []Event {
	events := make([]Event, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		events = append(events, classifyRow(row, tab))
	})
	return events
}

func classifyRow(row *goquery.Selection, tab string) Event {
	cells := row.Find("td")

	if id, ok := row.Attr("id"); ok {
		return classifyFundRow(strings.TrimSpace(id), cells, tab)
	}

	switch cells.Length() {
	case 0:
		return Event{Kind: EventSkip, Reason: "empty row"}
	case 1:
		name := textnorm.Clean(textnorm.Clean(cells.Text(), "_"), "_")
		return Event{Kind: EventAMCHeader, AMCName: name}
	default:
		return Event{Kind: EventSkip, Reason: "subtotal row"}
	}
}

func classifyFundRow(code string, cells *goquery.Selection, tab string) Event {
	categoryIndex := 1
	if tab == PensionTab {
		categoryIndex = 2
	}
	if cells.Length() <= categoryIndex {
		return Event{Kind: EventSkip, Reason: fmt.Sprintf("fund row %q has %d cells", code, cells.Length())}
	}

	fund := FundRow{
		Code:         code,
		Name:         textnorm.Clean(cells.Eq(0).Text(), "_"),
		CategoryName: textnorm.Clean(cells.Eq(categoryIndex).Text(), "-"),
	}
	if cells.Length() > categoryIndex+1 {
		fund.InceptionDate = strings.TrimSpace(cells.Eq(categoryIndex + 1).Text())
	}
	if href, ok := cells.Last().Find("a").First().Attr("href"); ok {
		fund.DetailHref = strings.TrimSpace(href)
	}

	return Event{Kind: EventFundRow, Fund: fund}
}

// AMCRef identifies the AMC a fund row was listed under.
type AMCRef struct {
	ID   uint
	Name string
}

// FundPair is a fund row together with the AMC header it appeared under.
type FundPair struct {
	AMC AMCRef
	Row FundRow
}

// Folded is the outcome of FoldEvents.
type Folded struct {
	Pairs []FundPair
	// Orphans are fund rows with no resolvable AMC context.
	Orphans []FundRow
	// UnknownAMCs are header names the resolver did not recognise.
	UnknownAMCs []string
}

// FoldEvents tracks the current AMC across events and pairs every fund row
// with it. A header whose name does not resolve clears the context, so the
// rows beneath it become orphans rather than inheriting the previous AMC.
func FoldEvents(events []Event, resolveAMC func(name string) (uint, bool)) Folded {
	var out Folded
	var current *AMCRef

	for _, ev := range events {
		switch ev.Kind {
		case EventAMCHeader:
			id, ok := resolveAMC(ev.AMCName)
			if !ok {
				current = nil
				out.UnknownAMCs = append(out.UnknownAMCs, ev.AMCName)
				continue
			}
			current = &AMCRef{ID: id, Name: ev.AMCName}
		case EventFundRow:
			if current == nil {
				out.Orphans = append(out.Orphans, ev.Fund)
				continue
			}
			out.Pairs = append(out.Pairs, FundPair{AMC: *current, Row: ev.Fund})
		}
	}

	return out
}
