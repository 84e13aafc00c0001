package types

import (
	"context"
	"strings"
	"testing"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  QueryFilter
		wantErr bool
	}{
		{name: "defaults", filter: *NewDefaultQueryFilter()},
		{name: "unlimited", filter: *NewNoLimitQueryFilter()},
		{name: "max limit", filter: QueryFilter{Limit: lo.ToPtr(FILTER_MAX_LIMIT)}},
		{name: "zero limit", filter: QueryFilter{Limit: lo.ToPtr(0)}, wantErr: true},
		{name: "limit too high", filter: QueryFilter{Limit: lo.ToPtr(FILTER_MAX_LIMIT + 1)}, wantErr: true},
		{name: "negative offset", filter: QueryFilter{Offset: lo.ToPtr(-1)}, wantErr: true},
		{name: "bad order", filter: QueryFilter{Order: lo.ToPtr("sideways")}, wantErr: true},
		{name: "asc", filter: QueryFilter{Order: lo.ToPtr(OrderAsc)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInvoiceFilter(t *testing.T) {
	var empty InvoiceFilter
	assert.Equal(t, FILTER_DEFAULT_LIMIT, empty.GetLimit())
	assert.Equal(t, 0, empty.GetOffset())
	assert.Equal(t, OrderDesc, empty.GetOrder())
	assert.False(t, empty.IsUnlimited())
	assert.NoError(t, empty.Validate())

	f := NewInvoiceFilter()
	f.Search = "  GloBex "
	assert.Equal(t, "globex", f.SearchTerm())

	f.Search = strings.Repeat("x", maxSearchLength+1)
	assert.True(t, ierr.IsValidation(f.Validate()))

	assert.True(t, NewNoLimitInvoiceFilter().IsUnlimited())
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse[string](nil, 0, 10, 0)
	assert.NotNil(t, resp.Items)
	assert.False(t, resp.Pagination.HasMore)

	resp = NewListResponse([]string{"a", "b"}, 5, 2, 2)
	assert.True(t, resp.Pagination.HasMore)

	resp = NewListResponse([]string{"e"}, 5, 2, 4)
	assert.False(t, resp.Pagination.HasMore)
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE)
	assert.True(t, strings.HasPrefix(id, "inv_"))
	assert.Len(t, id, len("inv_")+26)
	assert.Len(t, GenerateUUIDWithPrefix(""), 26)
	assert.NotEqual(t, id, GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE))
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, "req-1", GetRequestID(SetRequestID(ctx, "req-1")))
}

func TestOverflowPolicyValidate(t *testing.T) {
	assert.True(t, OverflowPolicyReject.Validate())
	assert.True(t, OverflowPolicyOverlap.Validate())
	assert.False(t, OverflowPolicy("truncate").Validate())
}
