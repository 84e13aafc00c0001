package types

import (
	"strings"

	ierr "github.com/flexprice/invoicer/internal/errors"
)

const maxSearchLength = 100

// InvoiceFilter represents the filter options for listing invoices
type InvoiceFilter struct {
	*QueryFilter

	// search matches the invoice number, the issuer name or the recipient name
	// case-insensitively
	Search string `json:"search,omitempty" form:"search"`
}

// NewInvoiceFilter creates a new invoice filter with default options
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates a new invoice filter without pagination
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *InvoiceFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if len(f.Search) > maxSearchLength {
		return ierr.NewError("search term too long").
			WithHintf("Search must be at most %d characters", maxSearchLength).
			WithField("search", "too long").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (f *InvoiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *InvoiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return 0
	}
	return f.QueryFilter.GetOffset()
}

func (f *InvoiceFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return OrderDesc
	}
	return f.QueryFilter.GetOrder()
}

func (f *InvoiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return false
	}
	return f.QueryFilter.IsUnlimited()
}

// SearchTerm returns the trimmed, lower-cased search string
func (f *InvoiceFilter) SearchTerm() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}
