package types

import (
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 10
	FILTER_MAX_LIMIT     = 100

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter is the pagination every list endpoint accepts
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}

var _ BaseFilter = (*InvoiceFilter)(nil)

// QueryFilter carries limit, offset and order from the query string. Absent
// fields fall back to the defaults below.
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Order  *string `json:"order,omitempty" form:"order"`
}

func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
		Order:  lo.ToPtr(OrderDesc),
	}
}

// NewNoLimitQueryFilter is for internal scans that must see every row
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(0),
		Order:  lo.ToPtr(OrderDesc),
	}
}

func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}

// GetLimit returns 0 for unlimited queries
func (f QueryFilter) GetLimit() int {
	if f.IsUnlimited() {
		return 0
	}
	return *f.Limit
}

func (f QueryFilter) GetOffset() int {
	return lo.FromPtr(f.Offset)
}

func (f QueryFilter) GetOrder() string {
	if f.Order == nil {
		return OrderDesc
	}
	return *f.Order
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > FILTER_MAX_LIMIT) {
		return ierr.NewErrorf("limit %d out of range", *f.Limit).
			WithHintf("Limit must be between 1 and %d", FILTER_MAX_LIMIT).
			WithField("limit", "out of range").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewErrorf("negative offset %d", *f.Offset).
			WithHint("Offset must be non-negative").
			WithField("offset", "must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if f.Order != nil && *f.Order != OrderAsc && *f.Order != OrderDesc {
		return ierr.NewErrorf("unknown order %q", *f.Order).
			WithHint("Order must be either 'asc' or 'desc'").
			WithField("order", "must be asc or desc").
			Mark(ierr.ErrValidation)
	}
	return nil
}
