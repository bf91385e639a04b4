package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency tags every amount the source reports.
const DefaultCurrency = "PKR"

// MarketCap is one fund's asset breakdown for one month. A row starts life as
// a stub (Code, Month, FundID) and is filled in from the fund's detail page later.
type MarketCap struct {
	Base
	Code   int64     `gorm:"not null;uniqueIndex" json:"code"`
	Month  time.Time `gorm:"type:date;not null;index" json:"month"`
	FundID uint      `gorm:"not null;index" json:"fund_id"`

	Cash                                     decimal.NullDecimal `gorm:"column:cash;type:numeric(24,2)" json:"cash" swaggertype:"string"`
	CashCurrency                             *string             `gorm:"column:cash_currency;size:3" json:"cash_currency"`
	PlacementsWithBanksAndDFIs               decimal.NullDecimal `gorm:"column:placements_with_banks_and_dfis;type:numeric(24,2)" json:"placements_with_banks_and_dfis" swaggertype:"string"`
	PlacementsWithBanksAndDFIsCurrency       *string             `gorm:"column:placements_with_banks_and_dfis_currency;size:3" json:"placements_with_banks_and_dfis_currency"`
	PlacementsWithNBFs                       decimal.NullDecimal `gorm:"column:placements_with_nbfs;type:numeric(24,2)" json:"placements_with_nbfs" swaggertype:"string"`
	PlacementsWithNBFsCurrency               *string             `gorm:"column:placements_with_nbfs_currency;size:3" json:"placements_with_nbfs_currency"`
	ReverseReposGovernmentSecurities         decimal.NullDecimal `gorm:"column:reverse_repos_against_government_securities;type:numeric(24,2)" json:"reverse_repos_against_government_securities" swaggertype:"string"`
	ReverseReposGovernmentSecuritiesCurrency *string             `gorm:"column:reverse_repos_against_government_securities_currency;size:3" json:"reverse_repos_against_government_securities_currency"`
	ReverseReposOtherSecurities              decimal.NullDecimal `gorm:"column:reverse_repos_against_all_other_securities;type:numeric(24,2)" json:"reverse_repos_against_all_other_securities" swaggertype:"string"`
	ReverseReposOtherSecuritiesCurrency      *string             `gorm:"column:reverse_repos_against_all_other_securities_currency;size:3" json:"reverse_repos_against_all_other_securities_currency"`
	TFCs                                     decimal.NullDecimal `gorm:"column:tfcs;type:numeric(24,2)" json:"tfcs" swaggertype:"string"`
	TFCsCurrency                             *string             `gorm:"column:tfcs_currency;size:3" json:"tfcs_currency"`
	GovernmentBackedSecurities               decimal.NullDecimal `gorm:"column:government_backed_guaranteed_securities;type:numeric(24,2)" json:"government_backed_guaranteed_securities" swaggertype:"string"`
	GovernmentBackedSecuritiesCurrency       *string             `gorm:"column:government_backed_guaranteed_securities_currency;size:3" json:"government_backed_guaranteed_securities_currency"`
	Equities                                 decimal.NullDecimal `gorm:"column:equities;type:numeric(24,2)" json:"equities" swaggertype:"string"`
	EquitiesCurrency                         *string             `gorm:"column:equities_currency;size:3" json:"equities_currency"`
	PIBs                                     decimal.NullDecimal `gorm:"column:pibs;type:numeric(24,2)" json:"pibs" swaggertype:"string"`
	PIBsCurrency                             *string             `gorm:"column:pibs_currency;size:3" json:"pibs_currency"`
	TBills                                   decimal.NullDecimal `gorm:"column:tbills;type:numeric(24,2)" json:"tbills" swaggertype:"string"`
	TBillsCurrency                           *string             `gorm:"column:tbills_currency;size:3" json:"tbills_currency"`
	CommercialPapers                         decimal.NullDecimal `gorm:"column:commercial_papers;type:numeric(24,2)" json:"commercial_papers" swaggertype:"string"`
	CommercialPapersCurrency                 *string             `gorm:"column:commercial_papers_currency;size:3" json:"commercial_papers_currency"`
	SpreadTransactions                       decimal.NullDecimal `gorm:"column:spread_transactions;type:numeric(24,2)" json:"spread_transactions" swaggertype:"string"`
	SpreadTransactionsCurrency               *string             `gorm:"column:spread_transactions_currency;size:3" json:"spread_transactions_currency"`
	CFSMarginFinancing                       decimal.NullDecimal `gorm:"column:cfs_margin_financing;type:numeric(24,2)" json:"cfs_margin_financing" swaggertype:"string"`
	CFSMarginFinancingCurrency               *string             `gorm:"column:cfs_margin_financing_currency;size:3" json:"cfs_margin_financing_currency"`
	OthersIncludingReceivables               decimal.NullDecimal `gorm:"column:others_including_receivables;type:numeric(24,2)" json:"others_including_receivables" swaggertype:"string"`
	OthersIncludingReceivablesCurrency       *string             `gorm:"column:others_including_receivables_currency;size:3" json:"others_including_receivables_currency"`
	Liabilities                              decimal.NullDecimal `gorm:"column:liabilities;type:numeric(24,2)" json:"liabilities" swaggertype:"string"`
	LiabilitiesCurrency                      *string             `gorm:"column:liabilities_currency;size:3" json:"liabilities_currency"`
	Total                                    decimal.NullDecimal `gorm:"column:total;type:numeric(24,2)" json:"total" swaggertype:"string"`
	TotalCurrency                            *string             `gorm:"column:total_currency;size:3" json:"total_currency"`

	Fund *Fund `gorm:"foreignKey:FundID" json:"fund,omitempty"`
}

// TableName returns the table backing MarketCap.
func (MarketCap) TableName() string {
	return "mutual_funds_marketcap"
}

// IsStub reports whether the record has not been filled from its detail page yet.
func (m *MarketCap) IsStub() bool {
	return !m.Total.Valid
}

// MarketCapFigures is the parsed content of a fund's asset breakdown page.
// Amounts are in rupees (the page reports thousands).
type MarketCapFigures struct {
	FundName string
	Month    time.Time
	Currency string

	Cash                             decimal.Decimal
	PlacementsWithBanksAndDFIs       decimal.Decimal
	PlacementsWithNBFs               decimal.Decimal
	ReverseReposGovernmentSecurities decimal.Decimal
	ReverseReposOtherSecurities      decimal.Decimal
	TFCs                             decimal.Decimal
	GovernmentBackedSecurities       decimal.Decimal
	Equities                         decimal.Decimal
	PIBs                             decimal.Decimal
	TBills                           decimal.Decimal
	CommercialPapers                 decimal.Decimal
	SpreadTransactions               decimal.Decimal
	CFSMarginFinancing               decimal.Decimal
	OthersIncludingReceivables       decimal.Decimal
	Liabilities                      decimal.Decimal
	Total                            decimal.Decimal
}

// Amounts returns pointers to the amount fields in the order the detail page lists them.
func (f *MarketCapFigures) Amounts() []*decimal.Decimal {
	return []*decimal.Decimal{
		&f.Cash,
		&f.PlacementsWithBanksAndDFIs,
		&f.PlacementsWithNBFs,
		&f.ReverseReposGovernmentSecurities,
		&f.ReverseReposOtherSecurities,
		&f.TFCs,
		&f.GovernmentBackedSecurities,
		&f.Equities,
		&f.PIBs,
		&f.TBills,
		&f.CommercialPapers,
		&f.SpreadTransactions,
		&f.CFSMarginFinancing,
		&f.OthersIncludingReceivables,
		&f.Liabilities,
		&f.Total,
	}
}

// Columns maps the figures onto MarketCap columns, pairing every amount with its currency tag.
func (f *MarketCapFigures) Columns(updatedAt time.Time) map[string]interface{} {
	currency := f.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	amounts := []struct {
		column string
		value  decimal.Decimal
	}{
		{"cash", f.Cash},
		{"placements_with_banks_and_dfis", f.PlacementsWithBanksAndDFIs},
		{"placements_with_nbfs", f.PlacementsWithNBFs},
		{"reverse_repos_against_government_securities", f.ReverseReposGovernmentSecurities},
		{"reverse_repos_against_all_other_securities", f.ReverseReposOtherSecurities},
		{"tfcs", f.TFCs},
		{"government_backed_guaranteed_securities", f.GovernmentBackedSecurities},
		{"equities", f.Equities},
		{"pibs", f.PIBs},
		{"tbills", f.TBills},
		{"commercial_papers", f.CommercialPapers},
		{"spread_transactions", f.SpreadTransactions},
		{"cfs_margin_financing", f.CFSMarginFinancing},
		{"others_including_receivables", f.OthersIncludingReceivables},
		{"liabilities", f.Liabilities},
		{"total", f.Total},
	}

	cols := make(map[string]interface{}, 2*len(amounts)+2)
	for _, a := range amounts {
		cols[a.column] = a.value
		cols[a.column+"_currency"] = currency
	}
	cols["month"] = f.Month
	cols["updated_at"] = updatedAt
	return cols
}
