package models

import "strings"

// CategoryType tells Shariah-compliant categories apart from conventional ones.
type CategoryType string

const (
	CategoryTypeIslamic      CategoryType = "Islamic"
	CategoryTypeConventional CategoryType = "Conventional"
)

// CategoryTypeFor derives the category type from the category's display name.
func CategoryTypeFor(name string) CategoryType {
	if strings.Contains(strings.ToLower(name), "shariah") {
		return CategoryTypeIslamic
	}
	return CategoryTypeConventional
}

// Category groups funds by investment policy (e.g. "Money Market", "Shariah Compliant Equity").
type Category struct {
	Base
	Code string       `gorm:"not null;uniqueIndex" json:"code"`
	Name string       `gorm:"not null" json:"name"`
	Slug string       `gorm:"not null;uniqueIndex" json:"slug"`
	Type CategoryType `gorm:"not null" json:"type"`

	Funds []Fund `gorm:"foreignKey:CategoryID" json:"funds,omitempty"`
}

// TableName returns the table backing Category.
func (Category) TableName() string {
	return "mutual_funds_category"
}
