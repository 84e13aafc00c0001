package planner

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	placeholder       = "-"
	defaultInitials   = "SG"
	defaultCompany    = "Company Name"
	dateLayout        = "Jan 02, 2006"
	thanksMessage     = "Thank you for your business!"
	glyphCaption      = "Scan to pay"
	paymentDetailsTag = "Payment Details:"
)

// FormatMoney renders an amount with two decimals behind the currency prefix
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

// FormatRate renders a percentage without trailing zeros, e.g. 18 or 12.5
func FormatRate(d decimal.Decimal) string {
	return d.String()
}

// FormatDate renders the issue date or a dash when absent
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return placeholder
	}
	return t.Format(dateLayout)
}

// Initials derives the logo monogram from a company name: the first two
// letters of a single word, otherwise the first letters of the first and
// last words
func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return defaultInitials
	case 1:
		r := []rune(parts[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		first := []rune(parts[0])[0]
		last := []rune(parts[len(parts)-1])[0]
		return string([]rune{unicode.ToUpper(first), unicode.ToUpper(last)})
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
