package util

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reCommaGroups = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)

// ParseAmount parses a spreadsheet cell holding a monetary value.
// Comma thousands separators and non-breaking spaces are tolerated; a
// dot is always the decimal point, so "1.234" stays 1.234.
func ParseAmount(cell string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(cell, "\u00A0", " ")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	if reCommaGroups.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return parsed, true
}

// MaterialNumber renders a material identifier the way it appears in the
// source system: numeric cells lose any spurious decimal part ("1234.0"
// becomes "1234"), everything else passes through trimmed.
func MaterialNumber(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	if !parsed.IsInteger() {
		return s
	}
	return parsed.String()
}

// Zfill left-pads value with zeros to width characters.
func Zfill(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}
