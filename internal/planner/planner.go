package planner

import (
	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/layout"
)

// GlyphResource is the resource name the footer uses for the payment glyph
const GlyphResource = "glyph"

// Layout is the result of planning one invoice onto one page
type Layout struct {
	Page     layout.Page
	Config   Config
	Sections []layout.Section
	Table    TableLayout
	Totals   invoice.Totals

	FooterTop float64
	StripY    float64

	// Overflow is set when the items do not fit and the footer was clamped
	// into the space the totals panel needs
	Overflow bool

	// Resources lists the bitmaps referenced by image instructions
	Resources []layout.Bitmap
}

// Instructions flattens every section in paint order
func (l *Layout) Instructions() []layout.Instruction {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Instructions)
	}
	out := make([]layout.Instruction, 0, n)
	for _, s := range l.Sections {
		out = append(out, s.Instructions...)
	}
	return out
}

// Section returns the first section of the given kind
func (l *Layout) Section(kind layout.SectionKind) (layout.Section, bool) {
	for _, s := range l.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return layout.Section{}, false
}

// Plan places every section of inv on page in a single pass. It only fails
// for a page with a non-positive dimension; missing or malformed invoice
// fields fall back to placeholders and zeros. glyph may be nil.
func Plan(inv *invoice.Invoice, page layout.Page, cfg Config, glyph *layout.Bitmap) (*Layout, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &invoice.Invoice{}
	}
	if glyph != nil && len(glyph.Data) == 0 {
		glyph = nil
	}

	p := &plan{
		inv:   inv,
		page:  page,
		cfg:   cfg.normalized(),
		glyph: glyph,
	}
	return p.run(), nil
}

type plan struct {
	inv   *invoice.Invoice
	page  layout.Page
	cfg   Config
	glyph *layout.Bitmap
}

func (p *plan) run() *Layout {
	out := &Layout{
		Page:   p.page,
		Config: p.cfg,
		Totals: p.inv.ResolveTotals(),
	}

	out.Table = LayoutTable(len(p.inv.Items), TableTop, Margin, p.page.Width-2*Margin, p.cfg.Columns)

	totalsTop := out.Table.Bottom() + GapTableTotals
	totalsBottom := totalsTop + totalsHeight

	wanted := totalsBottom + GapTotalsFooter
	out.FooterTop = min(wanted, FooterLimit(p.page))
	out.Overflow = wanted > FooterLimit(p.page)

	footer, stripY := p.footer(out.FooterTop)
	out.StripY = stripY

	out.Sections = []layout.Section{
		p.background(),
		p.header(),
		p.billTo(),
		p.table(out.Table),
		p.totals(totalsTop, out.Totals),
		footer,
	}

	if p.glyph != nil {
		g := *p.glyph
		g.Name = GlyphResource
		out.Resources = append(out.Resources, g)
	}
	return out
}
