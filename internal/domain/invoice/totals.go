package invoice

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the resolved monetary summary of an invoice
type Totals struct {
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// HasDiscount reports whether the discount line should be printed
func (t Totals) HasDiscount() bool {
	return t.DiscountRate.IsPositive() || t.DiscountAmount.IsPositive()
}

// ResolveTotals fills in every missing amount from the line items and rates.
// Explicit values are passed through untouched, except that the total is
// never reported below zero.
func (i *Invoice) ResolveTotals() Totals {
	var t Totals

	if i.Subtotal.Valid {
		t.Subtotal = i.Subtotal.Decimal
	} else {
		t.Subtotal = i.ItemsSubtotal()
	}

	t.TaxRate = i.TaxRate.OrZero()
	if i.TaxAmount.Valid {
		t.TaxAmount = i.TaxAmount.Decimal
	} else {
		t.TaxAmount = t.Subtotal.Mul(t.TaxRate).Div(hundred)
	}

	t.DiscountRate = i.DiscountRate.OrZero()
	if i.DiscountAmount.Valid {
		t.DiscountAmount = i.DiscountAmount.Decimal
	} else {
		t.DiscountAmount = t.Subtotal.Mul(t.DiscountRate).Div(hundred)
	}

	if i.Total.Valid {
		t.Total = i.Total.Decimal
	} else {
		t.Total = t.Subtotal.Add(t.TaxAmount).Sub(t.DiscountAmount)
	}
	if t.Total.IsNegative() {
		t.Total = decimal.Zero
	}

	return t
}

// ItemsSubtotal sums quantity times price over all line items
func (i *Invoice) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range i.Items {
		sum = sum.Add(item.Amount())
	}
	return sum
}

// RecomputeTotals discards any stored amounts and stores freshly derived
// ones, keeping the rates. Used when an invoice is created or edited.
func (i *Invoice) RecomputeTotals() {
	i.Subtotal = Number{}
	i.TaxAmount = Number{}
	i.DiscountAmount = Number{}
	i.Total = Number{}

	t := i.ResolveTotals()
	i.Subtotal = NewNumber(t.Subtotal)
	i.TaxAmount = NewNumber(t.TaxAmount)
	i.DiscountAmount = NewNumber(t.DiscountAmount)
	i.Total = NewNumber(t.Total)
}
