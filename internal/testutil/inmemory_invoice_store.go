package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/flexprice/invoicer/internal/domain/invoice"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/samber/lo"
)

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)

// InMemoryInvoiceStore implements invoice.Repository. It keeps the same
// unique index on invoice numbers as the invoices table and hands out copies,
// so callers never share state with the store.
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	items    map[string]*invoice.Invoice
	byNumber map[string]string
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	s := &InMemoryInvoiceStore{}
	s.Clear()
	return s
}

func (s *InMemoryInvoiceStore) Create(_ context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[inv.ID]; ok {
		return ierr.NewErrorf("invoice %s already exists", inv.ID).Mark(ierr.ErrAlreadyExists)
	}
	if _, ok := s.byNumber[inv.InvoiceNumber]; ok {
		return ierr.NewErrorf("invoice number %s already exists", inv.InvoiceNumber).
			WithHintf("Invoice number %s already exists", inv.InvoiceNumber).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[inv.ID] = inv.Clone()
	s.byNumber[inv.InvoiceNumber] = inv.ID
	return nil
}

func (s *InMemoryInvoiceStore) Get(_ context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return inv.Clone(), nil
}

func (s *InMemoryInvoiceStore) Update(_ context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.items[inv.ID]
	if !ok {
		return notFound(inv.ID)
	}
	if owner, taken := s.byNumber[inv.InvoiceNumber]; taken && owner != inv.ID {
		return ierr.NewErrorf("invoice number %s already exists", inv.InvoiceNumber).
			Mark(ierr.ErrAlreadyExists)
	}

	delete(s.byNumber, old.InvoiceNumber)
	s.items[inv.ID] = inv.Clone()
	s.byNumber[inv.InvoiceNumber] = inv.ID
	return nil
}

func (s *InMemoryInvoiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.items[id]
	if !ok {
		return notFound(id)
	}
	delete(s.byNumber, inv.InvoiceNumber)
	delete(s.items, id)
	return nil
}

func (s *InMemoryInvoiceStore) List(_ context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	matched := s.matching(filter)
	sort.Slice(matched, invoiceLess(matched, filter.GetOrder()))

	if !filter.IsUnlimited() {
		start := min(filter.GetOffset(), len(matched))
		end := min(start+filter.GetLimit(), len(matched))
		matched = matched[start:end]
	}

	return lo.Map(matched, func(inv *invoice.Invoice, _ int) *invoice.Invoice { return inv.Clone() }), nil
}

func (s *InMemoryInvoiceStore) Count(_ context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	return len(s.matching(filter)), nil
}

func (s *InMemoryInvoiceStore) GetLatest(_ context.Context) (*invoice.Invoice, error) {
	all := s.matching(types.NewNoLimitInvoiceFilter())
	if len(all) == 0 {
		return nil, ierr.NewError("no invoices").WithHint("No invoices yet").Mark(ierr.ErrNotFound)
	}
	sort.Slice(all, invoiceLess(all, types.OrderDesc))
	return all[0].Clone(), nil
}

// Clear empties the store between tests
func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*invoice.Invoice)
	s.byNumber = make(map[string]string)
}

// matching returns the stored invoices whose number, issuer or recipient
// contains the search term
func (s *InMemoryInvoiceStore) matching(filter *types.InvoiceFilter) []*invoice.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := filter.SearchTerm()
	out := make([]*invoice.Invoice, 0, len(s.items))
	for _, inv := range s.items {
		if term == "" || lo.SomeBy([]string{inv.InvoiceNumber, inv.From.Name, inv.To.Name}, func(field string) bool {
			return strings.Contains(strings.ToLower(field), term)
		}) {
			out = append(out, inv)
		}
	}
	return out
}

// invoiceLess orders by creation time, ties broken by id
func invoiceLess(items []*invoice.Invoice, order string) func(a, b int) bool {
	return func(a, b int) bool {
		i, j := items[a], items[b]
		if i.CreatedAt.Equal(j.CreatedAt) {
			if order == types.OrderAsc {
				return i.ID < j.ID
			}
			return i.ID > j.ID
		}
		if order == types.OrderAsc {
			return i.CreatedAt.Before(j.CreatedAt)
		}
		return i.CreatedAt.After(j.CreatedAt)
	}
}

func notFound(id string) error {
	return ierr.NewErrorf("invoice %s not found", id).
		WithHintf("Invoice %s not found", id).
		Mark(ierr.ErrNotFound)
}
