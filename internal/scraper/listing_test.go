package scraper

import (
	"reflect"
	"testing"
)

func TestParseListing(t *testing.T) {
	listing := ParseListing(loadFixture(t, "report_tab01.html"))

	wantAMCs := []ListingEntry{
		{Code: "1", Name: "ABL Asset Management Company Limited"},
		{Code: "2", Name: "Al Meezan Investment Management Limited"},
	}
	if !reflect.DeepEqual(listing.AMCs, wantAMCs) {
		t.Errorf("AMCs = %+v, want %+v", listing.AMCs, wantAMCs)
	}

	wantCategories := []ListingEntry{
		{Code: "11", Name: "Money Market"},
		{Code: "12", Name: "Shariah Compliant Equity"},
	}
	if !reflect.DeepEqual(listing.Categories, wantCategories) {
		t.Errorf("Categories = %+v, want %+v", listing.Categories, wantCategories)
	}
}

func TestParseListing_Sections(t *testing.T) {
	tests := []struct {
		name           string
		html           string
		wantAMCs       int
		wantCategories int
	}{
		{
			name:     "no_dropdowns",
			html:     `<html><body><p>nothing</p></body></html>`,
			wantAMCs: 0,
		},
		{
			name: "options_before_first_blank_are_ignored",
			html: `<select><option value="x">Stray</option></select>
				<select><option value=""></option><option value="1">AMC One</option></select>`,
			wantAMCs: 1,
		},
		{
			name: "month_stops_walk",
			html: `<select><option value=""></option><option value="1">AMC One</option></select>
				<select><option value="">Month</option></select>
				<select><option value=""></option><option value="2">AMC Two</option></select>`,
			wantAMCs: 1,
		},
		{
			name: "fund_type_section_skipped",
			html: `<select><option value=""></option><option value="1">AMC One</option></select>
				<select><option value=""></option><option value="01">Open End Schemes</option></select>
				<select><option value=""></option><option value="7">Income</option><option value="8">Equity</option></select>`,
			wantAMCs:       1,
			wantCategories: 2,
		},
		{
			name: "sections_after_categories_ignored",
			html: `<select><option value=""></option></select>
				<select><option value=""></option></select>
				<select><option value=""></option><option value="7">Income</option></select>
				<select><option value=""></option><option value="9">Something Else</option></select>`,
			wantCategories: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := ParseListing(parseHTML(t, tt.html))
			if len(listing.AMCs) != tt.wantAMCs {
				t.Errorf("got %d AMCs, want %d: %+v", len(listing.AMCs), tt.wantAMCs, listing.AMCs)
			}
			if len(listing.Categories) != tt.wantCategories {
				t.Errorf("got %d categories, want %d: %+v", len(listing.Categories), tt.wantCategories, listing.Categories)
			}
		})
	}
}
