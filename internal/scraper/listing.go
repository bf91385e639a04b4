package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundsync/internal/textnorm"
)

// ListingEntry is one (code, name) option from the report page's filter dropdowns.
type ListingEntry struct {
	Code string
	Name string
}

// Listing holds the AMC and category options advertised by the report page.
type Listing struct {
	AMCs       []ListingEntry
	Categories []ListingEntry
}

// Dropdown sections, counted by the blank option that opens each one.
const (
	sectionAMCs       = 1
	sectionFundTypes  = 2
	sectionCategories = 3
)

const listingStopText = "Month"

// ParseListing walks every <option> in document order. Each blank option
// opens the next dropdown; the AMC and category dropdowns are collected and
// the walk stops at the month dropdown. Options without a value are ignored.
func ParseListing(doc *goquery.Document) Listing {
	var listing Listing
	section := 0

	doc.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		text := strings.TrimSpace(opt.Text())
		switch {
		case text == "":
			section++
			return true
		case text == listingStopText:
			return false
		case section == sectionFundTypes:
			return true
		}

		value, _ := opt.Attr("value")
		code := strings.TrimSpace(value)
		if code == "" {
			return true
		}
		entry := ListingEntry{Code: code, Name: textnorm.Clean(opt.Text(), "_")}

		switch section {
		case sectionAMCs:
			listing.AMCs = append(listing.AMCs, entry)
		case sectionCategories:
			listing.Categories = append(listing.Categories, entry)
		}
		return true
	})

	return listing
}
