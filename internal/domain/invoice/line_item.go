package invoice

import (
	"github.com/shopspring/decimal"
)

// LineItem is a single row of an invoice. Quantity and Price are expected to
// be non-negative; anything else is treated as zero when displayed or summed.
type LineItem struct {
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Price       Number `json:"price"`
}

// DisplayQuantity is the quantity as shown in the items table: a whole
// number, never negative
func (li LineItem) DisplayQuantity() decimal.Decimal {
	return li.Quantity.NonNegative().Round(0)
}

// DisplayPrice is the unit price as shown in the items table, never negative
func (li LineItem) DisplayPrice() decimal.Decimal {
	return li.Price.NonNegative()
}

// Amount is quantity times price with invalid inputs counted as zero
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.NonNegative().Mul(li.Price.NonNegative())
}
