package scraper

import (
	"strconv"
	"strings"
)

// ExtractDetailCode pulls the market-cap code out of a detail link by keeping
// only its digits, e.g. "AUMs_report.php?Fund_Code=1234" yields 1234.
func ExtractDetailCode(href string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, href)
	if digits == "" {
		return 0, false
	}

	code, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return code, true
}
