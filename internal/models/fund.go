package models

import (
	"strconv"
	"time"
)

// FundType is the report tab a fund was first listed under. The numeric value
// matches both the tab selector ("01".."05") and the seeded fund type rows.
type FundType uint

const (
	FundTypeOpenEnd          FundType = 1
	FundTypeVoluntaryPension FundType = 2
	FundTypeClosedEnd        FundType = 3
	FundTypeDedicatedEquity  FundType = 4
	FundTypeETF              FundType = 5
)

var fundTypeNames = map[FundType]string{
	FundTypeOpenEnd:          "Open End Schemes",
	FundTypeVoluntaryPension: "Voluntary Pension Funds",
	FundTypeClosedEnd:        "Closed End Schemes",
	FundTypeDedicatedEquity:  "Dedicated Equity Funds",
	FundTypeETF:              "Exchange Traded Fund(ETF)",
}

// String returns the display name used on the source site.
func (t FundType) String() string {
	if name, ok := fundTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether t is one of the five known fund types.
func (t FundType) Valid() bool {
	_, ok := fundTypeNames[t]
	return ok
}

// FundTypeRecord is the seeded lookup row referenced by Fund.FundTypeID.
type FundTypeRecord struct {
	ID   FundType `gorm:"primaryKey" json:"id"`
	Name string   `gorm:"not null" json:"name"`
}

// TableName returns the table backing FundTypeRecord.
func (FundTypeRecord) TableName() string {
	return "mutual_funds_fundtype"
}

// Fund is a single mutual fund, pension sub-fund or ETF.
// Category and AMC are fixed when the fund is created; only the name is ever corrected.
type Fund struct {
	Base
	Code          string     `gorm:"not null;uniqueIndex" json:"code"`
	Name          string     `gorm:"not null" json:"name"`
	Slug          string     `gorm:"not null;uniqueIndex" json:"slug"`
	InceptionDate *time.Time `gorm:"type:date" json:"inception_date,omitempty"`
	CategoryID    uint       `gorm:"not null;index" json:"category_id"`
	FundTypeID    FundType   `gorm:"not null" json:"fund_type_id"`
	AMCID         uint       `gorm:"column:amc_id;not null;index" json:"amc_id"`

	Category *Category               `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AMC      *AssetManagementCompany `gorm:"foreignKey:AMCID" json:"amc,omitempty"`
}

// TableName returns the table backing Fund.
func (Fund) TableName() string {
	return "mutual_funds_fund"
}

// FundTypeForTab maps a report tab selector such as "02" to its fund type.
func FundTypeForTab(tab string) (FundType, bool) {
	n, err := strconv.Atoi(tab)
	if err != nil || n < 0 {
		return 0, false
	}
	t := FundType(n)
	return t, t.Valid()
}
