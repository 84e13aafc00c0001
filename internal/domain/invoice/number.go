package invoice

import (
	"bytes"
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Number is an optional decimal. Valid is false when the value was absent or
// could not be parsed; such values never fail decoding and display as zero.
type Number struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewNumber returns a present Number
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d, Valid: true}
}

// NewNumberFromFloat returns a present Number from a float
func NewNumberFromFloat(f float64) Number {
	return NewNumber(decimal.NewFromFloat(f))
}

// OrZero returns the value, or zero when absent
func (n Number) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}

// NonNegative returns the value clamped at zero; absent values are zero
func (n Number) NonNegative() decimal.Decimal {
	if !n.Valid || n.Decimal.IsNegative() {
		return decimal.Zero
	}
	return n.Decimal
}

// UnmarshalJSON accepts JSON numbers and numeric strings. Anything else
// decodes to an absent value instead of an error.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return nil
	}
	*n = NewNumber(d)
	return nil
}

// MarshalJSON writes the value as a bare JSON number, or null when absent
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Decimal.String()), nil
}

// Scan implements sql.Scanner
func (n *Number) Scan(value interface{}) error {
	var nd decimal.NullDecimal
	if err := nd.Scan(value); err != nil {
		return err
	}
	n.Decimal, n.Valid = nd.Decimal, nd.Valid
	return nil
}

// Value implements driver.Valuer
func (n Number) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.String(), nil
}
