package testutil

import (
	"context"

	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator stands in for the renderer where the document bytes do not matter
type MockPDFGenerator struct {
	mock.Mock
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice, opts pdf.RenderOptions) ([]byte, error) {
	args := m.Called(ctx, inv, opts)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}
