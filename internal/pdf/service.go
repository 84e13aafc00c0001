package pdf

import (
	"context"
	"strings"

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
	"github.com/h2non/filetype"
)

// minDocumentSize is the smallest buffer accepted as a complete document
const minDocumentSize = 256

const defaultAuthor = "Invoice Generator"

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice, opts RenderOptions) ([]byte, error)
}

// RenderOptions selects how a single invoice is rendered
type RenderOptions struct {
	// Variant names the visual template. Unknown or empty names use the
	// registry default.
	Variant string
}

type Config struct {
	Page     layout.Page
	Overflow types.OverflowPolicy
}

type service struct {
	config   Config
	variants *variant.Registry
	glyphs   *glyph.Resolver
	encoder  encoder.Encoder
	logger   *logger.Logger
}

// NewGenerator creates a new PDF service
func NewGenerator(
	cfg *config.Configuration,
	variants *variant.Registry,
	glyphs *glyph.Resolver,
	enc encoder.Encoder,
	log *logger.Logger,
) Generator {
	overflow := cfg.Render.OverflowPolicy
	if !overflow.Validate() {
		overflow = types.OverflowPolicyReject
	}
	return &service{
		config: Config{
			Page:     layout.Page{Width: cfg.Render.PageWidth, Height: cfg.Render.PageHeight},
			Overflow: overflow,
		},
		variants: variants,
		glyphs:   glyphs,
		encoder:  enc,
		logger:   log,
	}
}

// RenderInvoicePdf resolves the glyph, lays the invoice out on a single page
// and encodes it. The returned buffer is always a complete document.
func (s *service) RenderInvoicePdf(ctx context.Context, inv *invoice.Invoice, opts RenderOptions) ([]byte, error) {
	if inv == nil {
		return nil, ierr.NewError("invoice is required").
			WithHint("Please provide an invoice to render").
			Mark(ierr.ErrValidation)
	}

	// the glyph is the only step with latency, so it runs before layout
	bitmap := s.glyphs.Resolve(ctx, GlyphPayload(inv))

	cfg, ok := s.variants.Select(opts.Variant)
	if !ok && opts.Variant != "" {
		s.logger.Warnw("unknown template, using default",
			"template", opts.Variant,
			"default", cfg.Name)
	}

	plan, err := planner.Plan(inv, s.config.Page, cfg, bitmap)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid page size configured for rendering").
			Mark(ierr.ErrSystem)
	}

	if plan.Overflow {
		maxItems := planner.MaxItems(s.config.Page)
		if s.config.Overflow == types.OverflowPolicyReject {
			return nil, ierr.NewErrorf("invoice has %d items, a single page holds %d", len(inv.Items), maxItems).
				WithHintf("Invoices can have at most %d line items", maxItems).
				WithReportableDetails(map[string]any{
					"items":     len(inv.Items),
					"max_items": maxItems,
				}).
				Mark(ierr.ErrValidation)
		}
		s.logger.Warnw("invoice overflows the page, footer overlaps totals",
			"invoice_id", inv.ID,
			"items", len(inv.Items),
			"max_items", maxItems)
	}

	out, err := s.encoder.Encode(ctx, &encoder.Document{
		Page:         plan.Page,
		Instructions: plan.Instructions(),
		Resources:    plan.Resources,
		Title:        strings.TrimSpace("Invoice " + inv.InvoiceNumber),
		Author:       documentAuthor(inv),
	})
	if err != nil {
		return nil, err
	}

	if len(out) < minDocumentSize || !filetype.Is(out, "pdf") {
		return nil, ierr.NewError("encoder returned an incomplete document").
			WithHint("Failed to generate invoice PDF").
			WithReportableDetails(map[string]any{"size": len(out)}).
			Mark(ierr.ErrSystem)
	}

	s.logger.Debugw("rendered invoice pdf",
		"invoice_id", inv.ID,
		"template", cfg.Name,
		"items", len(inv.Items),
		"glyph", bitmap != nil,
		"size", len(out))

	return out, nil
}

// GlyphPayload is the text encoded in the payment glyph: the invoice number,
// else the invoice id, else nothing
func GlyphPayload(inv *invoice.Invoice) string {
	if n := strings.TrimSpace(inv.InvoiceNumber); n != "" {
		return n
	}
	return strings.TrimSpace(inv.ID)
}

func documentAuthor(inv *invoice.Invoice) string {
	if name := strings.TrimSpace(inv.From.Name); name != "" {
		return name
	}
	return defaultAuthor
}
