// Package phone canonicalizes freeform UAE mobile numbers into the formats
// expected by LeadSquared and by the survey spreadsheet.
package phone

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// CountryCode is the UAE dialing prefix used for every CRM format.
	CountryCode = "971"

	// SignificantDigits is the length of a UAE mobile number without
	// country code or trunk zero.
	SignificantDigits = 9
)

// Number holds the significant digits of a phone number. Every derived
// format is a function of Digits alone.
type Number struct {
	Digits string
}

// Parse strips everything but digits from raw and keeps the last
// SignificantDigits of them. Shorter input is kept whole; use Valid to
// reject it.
func Parse(raw string) Number {
	digits := extractDigits(raw)
	if len(digits) > SignificantDigits {
		digits = digits[len(digits)-SignificantDigits:]
	}
	return Number{Digits: digits}
}

// Valid reports whether exactly SignificantDigits were recovered.
func (n Number) Valid() bool {
	return len(n.Digits) == SignificantDigits
}

// CRMFormat returns the hyphenated form LeadSquared stores, e.g. +971-501234567.
func (n Number) CRMFormat() string {
	return "+" + CountryCode + "-" + n.Digits
}

// SearchFormats returns the lookup candidates in the order they should be
// tried. Historic leads are stored either hyphenated or concatenated.
func (n Number) SearchFormats() []string {
	return []string{n.CRMFormat(), CountryCode + n.Digits}
}

// SinkFormat returns the local 9-digit number written to the spreadsheet.
func (n Number) SinkFormat() string {
	return n.Digits
}

func (n Number) String() string {
	return n.CRMFormat()
}

// extractDigits folds full-width and Arabic-Indic digits to ASCII and drops
// every other rune.
func extractDigits(raw string) string {
	folded := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		}
	}
	return b.String()
}
