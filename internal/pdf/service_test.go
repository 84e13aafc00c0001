package pdf

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/flexprice/invoicer/internal/config"
	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/encoder"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/glyph"
	"github.com/flexprice/invoicer/internal/layout"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/planner"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/flexprice/invoicer/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(ctx context.Context, doc *encoder.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Encode(ctx context.Context, text string, size int) ([]byte, error) {
	args := m.Called(ctx, text, size)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func fixedClock() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newTestGenerator(provider glyph.Provider, enc encoder.Encoder, policy types.OverflowPolicy) Generator {
	cfg := config.GetDefaultConfig()
	cfg.Render.OverflowPolicy = policy
	cfg.Render.GlyphSize = 120
	log := logger.NewNoopLogger()
	if enc == nil {
		enc = encoder.NewPDFEncoder(encoder.WithClock(fixedClock))
	}
	return NewGenerator(cfg, variant.NewRegistry(variant.DefaultName), glyph.NewResolver(provider, cfg, log), enc, log)
}

func widgetInvoice(items int) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            "inv_01",
		InvoiceNumber: "INV-0001",
		From:          invoice.Party{Name: "Acme Trading Co", Email: "billing@acme.test"},
		To:            invoice.Party{Name: "Globex"},
		TaxRate:       invoice.NewNumberFromFloat(18),
	}
	for i := 0; i < items; i++ {
		inv.Items = append(inv.Items, invoice.LineItem{
			Description: "Widget",
			Quantity:    invoice.NewNumberFromFloat(2),
			Price:       invoice.NewNumberFromFloat(100),
		})
	}
	return inv
}

func TestRenderInvoicePdf(t *testing.T) {
	g := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyReject)

	out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{Variant: "template2"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), minDocumentSize)
}

func TestRenderInvoicePdf_Idempotent(t *testing.T) {
	g := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyReject)

	a, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(3), RenderOptions{})
	require.NoError(t, err)
	b, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(3), RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderInvoicePdf_UnknownVariantFallsBack(t *testing.T) {
	g := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyReject)

	fallback, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{Variant: "nope"})
	require.NoError(t, err)
	def, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{Variant: variant.DefaultName})
	require.NoError(t, err)
	assert.Equal(t, def, fallback)
}

func TestRenderInvoicePdf_GlyphFailureDegrades(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Encode", mock.Anything, "INV-0001", 120).Return(nil, errors.New("qr backend down"))

	enc := new(MockEncoder)
	pdfEnc := encoder.NewPDFEncoder(encoder.WithClock(fixedClock))
	var captured *encoder.Document
	enc.On("Encode", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*encoder.Document) }).
		Return(nil, nil).Once()

	g := newTestGenerator(provider, enc, types.OverflowPolicyReject)
	_, _ = g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
	require.NotNil(t, captured)
	assert.Empty(t, captured.Resources)
	for _, in := range captured.Instructions {
		assert.NotEqual(t, layout.OpImage, in.Op)
	}
	provider.AssertExpectations(t)

	// without the mock encoder the document still renders
	g = newTestGenerator(provider, pdfEnc, types.OverflowPolicyReject)
	out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(encoder.MagicHeader)))
}

func TestRenderInvoicePdf_DocumentMetadata(t *testing.T) {
	enc := new(MockEncoder)
	var captured *encoder.Document
	enc.On("Encode", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*encoder.Document) }).
		Return(nil, nil)

	g := newTestGenerator(glyph.NewQRProvider(), enc, types.OverflowPolicyReject)

	_, _ = g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
	require.NotNil(t, captured)
	assert.Equal(t, "Invoice INV-0001", captured.Title)
	assert.Equal(t, "Acme Trading Co", captured.Author)
	require.Len(t, captured.Resources, 1)
	assert.Equal(t, planner.GlyphResource, captured.Resources[0].Name)
	assert.Equal(t, layout.A4(), captured.Page)

	_, _ = g.RenderInvoicePdf(context.Background(), &invoice.Invoice{}, RenderOptions{})
	assert.Equal(t, "Invoice", captured.Title)
	assert.Equal(t, defaultAuthor, captured.Author)
	assert.Empty(t, captured.Resources)
}

func TestRenderInvoicePdf_Overflow(t *testing.T) {
	tooMany := widgetInvoice(planner.MaxItems(layout.A4()) + 1)

	reject := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyReject)
	out, err := reject.RenderInvoicePdf(context.Background(), tooMany, RenderOptions{})
	assert.Nil(t, out)
	assert.True(t, ierr.IsValidation(err))

	overlap := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyOverlap)
	out, err = overlap.RenderInvoicePdf(context.Background(), tooMany, RenderOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(encoder.MagicHeader)))
}

func TestRenderInvoicePdf_EncoderErrors(t *testing.T) {
	t.Run("encoder failure", func(t *testing.T) {
		enc := new(MockEncoder)
		expected := ierr.NewError("out of memory").Mark(ierr.ErrSystem)
		enc.On("Encode", mock.Anything, mock.Anything).Return(nil, expected)

		g := newTestGenerator(glyph.NewQRProvider(), enc, types.OverflowPolicyReject)
		out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
		assert.ErrorIs(t, err, expected)
		assert.Nil(t, out)
	})

	t.Run("truncated output", func(t *testing.T) {
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)

		g := newTestGenerator(glyph.NewQRProvider(), enc, types.OverflowPolicyReject)
		out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
		assert.True(t, ierr.IsSystem(err))
		assert.Nil(t, out)
	})

	t.Run("wrong magic", func(t *testing.T) {
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything, mock.Anything).Return(bytes.Repeat([]byte("x"), 1024), nil)

		g := newTestGenerator(glyph.NewQRProvider(), enc, types.OverflowPolicyReject)
		out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
		assert.True(t, ierr.IsSystem(err))
		assert.Nil(t, out)
	})
}

func TestRenderInvoicePdf_InvalidPage(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero height", layout.A4Width, 0},
		{"infinite width", math.Inf(1), layout.A4Height},
		{"negative infinite height", layout.A4Width, math.Inf(-1)},
		{"nan width", math.NaN(), layout.A4Height},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Render.PageWidth = tt.width
			cfg.Render.PageHeight = tt.height
			log := logger.NewNoopLogger()
			g := NewGenerator(cfg, variant.NewRegistry(""), glyph.NewResolver(glyph.NewQRProvider(), cfg, log),
				encoder.NewPDFEncoder(), log)

			out, err := g.RenderInvoicePdf(context.Background(), widgetInvoice(1), RenderOptions{})
			assert.True(t, ierr.IsSystem(err))
			assert.Nil(t, out)
		})
	}
}

func TestRenderInvoicePdf_NilInvoice(t *testing.T) {
	g := newTestGenerator(glyph.NewQRProvider(), nil, types.OverflowPolicyReject)
	out, err := g.RenderInvoicePdf(context.Background(), nil, RenderOptions{})
	assert.True(t, ierr.IsValidation(err))
	assert.Nil(t, out)
}

func TestGlyphPayload(t *testing.T) {
	assert.Equal(t, "INV-0009", GlyphPayload(&invoice.Invoice{ID: "inv_1", InvoiceNumber: "INV-0009"}))
	assert.Equal(t, "inv_1", GlyphPayload(&invoice.Invoice{ID: "inv_1"}))
	assert.Equal(t, "", GlyphPayload(&invoice.Invoice{}))
}
