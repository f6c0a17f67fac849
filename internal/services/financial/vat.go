package financial

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidVATNumber is returned before any network call for a malformed VAT number
	ErrInvalidVATNumber = errors.New("invalid VAT number")

	// ErrNoFinancialData is returned when a company has no published deposit
	ErrNoFinancialData = errors.New("no financial data")

	vatDigits = regexp.MustCompile(`^\d{10}$`)
)

// NormalizeVATNumber strips the country prefix, dots and spaces from a Belgian
// VAT number and checks that ten digits remain. A nine digit legacy number gets
// its leading zero back.
func NormalizeVATNumber(vat string) (string, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(vat))
	cleaned = strings.TrimPrefix(cleaned, "BE")
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ', '-', '/':
			return -1
		}
		return r
	}, cleaned)

	if len(cleaned) == 9 {
		cleaned = "0" + cleaned
	}
	if !vatDigits.MatchString(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVATNumber, vat)
	}
	return cleaned, nil
}

// FormatVATNumber renders a ten digit VAT number as xxxx.xxx.xxx
func FormatVATNumber(vat string) string {
	normalized, err := NormalizeVATNumber(vat)
	if err != nil {
		return vat
	}
	return normalized[:4] + "." + normalized[4:7] + "." + normalized[7:]
}
