package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
	"fundsync/internal/textnorm"
)

// Row positions on the asset breakdown page.
const (
	detailFundNameRow = 3
	detailMonthRow    = 5
	detailFirstAmount = 7
)

const detailMonthLayout = "January, 2006"

// The page reports amounts in thousands of rupees.
var amountScale = decimal.NewFromInt(1000)

// ParseMarketCapDetail parses a fund's asset breakdown page. The fund name and
// month rows carry a bold label that is dropped before reading the value; the
// amount rows list the figures in the order of MarketCapFigures.Amounts.
func ParseMarketCapDetail(doc *goquery.Document) (*models.MarketCapFigures, error) {
	figures := &models.MarketCapFigures{Currency: models.DefaultCurrency}
	amounts := figures.Amounts()

	rows := doc.Find("tr")
	if rows.Length() < detailFirstAmount+len(amounts) {
		return nil, apperrors.WithMessage(apperrors.ErrReportStructure,
			fmt.Sprintf("detail page has %d rows, expected at least %d", rows.Length(), detailFirstAmount+len(amounts)))
	}

	figures.FundName = textnorm.Clean(labelledValue(rows.Eq(detailFundNameRow)), "")

	monthText := strings.TrimSpace(labelledValue(rows.Eq(detailMonthRow)))
	month, err := time.Parse(detailMonthLayout, monthText)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportStructure, fmt.Errorf("parsing detail month %q: %w", monthText, err))
	}
	figures.Month = month

	for i, target := range amounts {
		row := rows.Eq(detailFirstAmount + i)
		cells := row.Find("td")
		if cells.Length() < 2 {
			return nil, apperrors.WithMessage(apperrors.ErrReportStructure,
				fmt.Sprintf("amount row %d has %d cells", i, cells.Length()))
		}
		value, err := ParseAmount(cells.Eq(1).Text())
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrReportStructure, err)
		}
		*target = value
	}

	return figures, nil
}

// labelledValue returns the first cell's text with the row's bold label removed.
func labelledValue(row *goquery.Selection) string {
	clone := row.Clone()
	clone.Find("b").First().Remove()
	return clone.Find("td").First().Text()
}

// ParseAmount converts a figure as printed on the detail page to rupees.
// Thousands separators are ignored, "(1,234)" is negative, and a blank
// cell or a lone "-" is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" || value == "-" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(value, "(") {
		negative = true
		value = strings.TrimSpace(strings.Trim(strings.ReplaceAll(value, "-", ""), "()"))
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", strings.TrimSpace(raw), err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount.Mul(amountScale), nil
}
