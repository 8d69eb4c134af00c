package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	monthToken = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateToken  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// dateLayouts are tried in order against legacy date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// LegacyNormalizer converts loosely formatted historical month and date
// values into the canonical tokens the data model requires. It never fails:
// an unrecognized value normalizes to the empty string, which drops the
// field instead of rejecting the record.
type LegacyNormalizer struct {
	monthYear int
}

// NewLegacyNormalizer builds a normalizer that anchors bare month names to
// the given year.
func NewLegacyNormalizer(monthYear int) *LegacyNormalizer {
	if monthYear <= 0 {
		monthYear = 2025
	}
	return &LegacyNormalizer{monthYear: monthYear}
}

// NormalizeMonth maps a value to a YYYY-MM token. Values already in that
// shape pass through; English month names (full or abbreviated, any case)
// anchor to the configured year; everything else becomes "".
func (n *LegacyNormalizer) NormalizeMonth(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if monthToken.MatchString(value) {
		return value
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(value, m.String()) || strings.EqualFold(value, m.String()[:3]) {
			return fmt.Sprintf("%d-%02d", n.monthYear, int(m))
		}
	}
	return ""
}

// NormalizeDate maps a value to a YYYY-MM-DD token. Values already in that
// shape pass through; otherwise common legacy layouts are tried; failure
// normalizes to "".
func (n *LegacyNormalizer) NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if dateToken.MatchString(value) {
		return value
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
