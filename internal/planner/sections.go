package planner

import (
	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/layout"
)

func (p *plan) header() layout.Section {
	var s layout.Stream
	pal := p.cfg.Palette
	from := p.inv.From

	s.Circle(Margin+logoSize/2, logoTop+logoSize/2, logoSize/2, layout.Fill(pal.Accent))
	s.Text(layout.Text{
		X: Margin, Y: logoTop + (logoSize-18)/2, Width: logoSize,
		Align: layout.AlignCenter, Font: layout.Bold(18), Color: pal.OnAccent,
		Value: Initials(from.Name),
	})

	boxX := p.page.Width - Margin - boxWidth
	left := Margin + logoSize + companyGap
	width := max(boxX-companyGap-left, 0)

	s.Text(layout.Text{X: left, Y: logoTop + 4, Width: width, Font: layout.Bold(24), Color: pal.Heading,
		Value: orDefault(from.Name, defaultCompany)})
	s.Text(layout.Text{X: left, Y: logoTop + 32, Width: width, Font: layout.Regular(11), Color: pal.Subtle,
		Value: from.Email})
	s.Text(layout.Text{X: left, Y: logoTop + 48, Width: width, Font: layout.Regular(10), Color: pal.Subtle,
		Value: from.Address})
	s.Text(layout.Text{X: left, Y: logoTop + 62, Width: width, Font: layout.Regular(10), Color: pal.Subtle,
		Value: from.Locality()})

	s.RoundedRect(layout.Rect{X: boxX, Y: boxTop, W: boxWidth, H: boxHeight}, boxRadius,
		layout.Stroke(pal.Accent, 1))
	inner := boxWidth - 2*boxPadding
	s.Text(layout.Text{X: boxX + boxPadding, Y: logoTop + 4, Width: inner, Font: layout.Bold(12), Color: pal.Accent,
		Value: "INVOICE #"})
	s.Text(layout.Text{X: boxX + boxPadding, Y: logoTop + 22, Width: inner, Font: layout.Regular(12), Color: pal.Ink,
		Value: orDash(p.inv.InvoiceNumber)})
	s.Text(layout.Text{X: boxX + boxPadding, Y: logoTop + 44, Width: inner, Font: layout.Bold(12), Color: pal.Accent,
		Value: "Date"})
	s.Text(layout.Text{X: boxX + boxPadding, Y: logoTop + 62, Width: inner, Font: layout.Regular(12), Color: pal.Ink,
		Value: FormatDate(p.inv.IssueDate)})

	return layout.Section{Kind: layout.SectionHeader, Top: headerTop, Bottom: headerBot, Instructions: s.Instructions()}
}

func (p *plan) billTo() layout.Section {
	var s layout.Stream
	pal := p.cfg.Palette
	to := p.inv.To

	p.rule(&s, billToRule)
	s.Text(layout.Text{X: Margin, Y: billToTop, Width: billToWidth, Font: layout.Bold(16), Color: pal.Label,
		Value: "Bill To:"})
	s.Text(layout.Text{X: Margin, Y: billToTop + 28, Width: billToWidth, Font: layout.Bold(13), Color: pal.Ink,
		Value: orDash(to.Name)})
	s.Text(layout.Text{X: Margin, Y: billToTop + 46, Width: billToWidth, Font: layout.Regular(11), Color: pal.Body,
		Value: orDash(to.Address)})
	s.Text(layout.Text{X: Margin, Y: billToTop + 68, Width: billToWidth, Font: layout.Regular(11), Color: pal.Body,
		Value: to.Locality()})
	s.Text(layout.Text{X: Margin, Y: billToTop + 84, Width: billToWidth, Font: layout.Regular(11), Color: pal.Body,
		Value: to.Email})
	p.rule(&s, billToBot)

	return layout.Section{Kind: layout.SectionBillTo, Top: billToRule, Bottom: billToBot, Instructions: s.Instructions()}
}

func (p *plan) table(t TableLayout) layout.Section {
	var s layout.Stream
	pal := p.cfg.Palette

	s.Rect(layout.Rect{X: t.Left, Y: t.Top, W: t.Width, H: t.TotalHeight()}, layout.Stroke(pal.Accent, 1))
	s.Rect(layout.Rect{X: t.Left, Y: t.Top, W: t.Width, H: t.HeaderHeight}, layout.Fill(pal.Accent))

	for col, title := range []string{"Description", "Quantity", "Amount"} {
		x, w := t.Column(col)
		s.Text(layout.Text{X: x, Y: t.HeaderTextY(), Width: w, Align: layout.AlignCenter,
			Font: layout.Bold(tableHeaderFont), Color: pal.OnAccent, Value: title})
	}

	for i, item := range p.inv.Items {
		row := layout.Rect{X: t.Left, Y: t.RowTop(i), W: t.Width, H: t.RowHeight}
		s.Rect(row, layout.Stroke(pal.RowBorder, 0.5))
		if t.Tinted(i) {
			s.Rect(row.Inset(1), layout.Fill(pal.RowTint))
		}
		for col, value := range p.cells(item) {
			x, w := t.Column(col)
			s.Text(layout.Text{X: x, Y: t.RowTextY(i), Width: w, Align: layout.AlignCenter,
				Font: layout.Regular(tableRowFont), Color: pal.Ink, Value: value})
		}
	}

	return layout.Section{Kind: layout.SectionTable, Top: t.Top, Bottom: t.Bottom(), Instructions: s.Instructions()}
}

// cells renders one item row. The amount column shows the unit price.
func (p *plan) cells(item invoice.LineItem) [3]string {
	return [3]string{
		orDash(item.Description),
		item.DisplayQuantity().String(),
		FormatMoney(p.cfg.Currency, item.DisplayPrice()),
	}
}

func (p *plan) totals(top float64, t invoice.Totals) layout.Section {
	var s layout.Stream
	pal := p.cfg.Palette
	cur := p.cfg.Currency

	x := p.page.Width - Margin - totalsWidth
	s.RoundedRect(layout.Rect{X: x, Y: top, W: totalsWidth, H: totalsHeight}, totalsRadius,
		layout.Stroke(pal.Accent, 1))

	labelW := totalsWidth * 0.55
	valueX := x + totalsPadding + labelW
	valueW := totalsWidth*0.45 - 18

	y := top + totalsPadding
	line := func(label, value string, font layout.Font, c layout.Color) {
		s.Text(layout.Text{X: x + totalsPadding, Y: y, Width: labelW, Font: font, Color: c, Value: label})
		s.Text(layout.Text{X: valueX, Y: y, Width: valueW, Align: layout.AlignRight, Font: font, Color: c, Value: value})
	}

	line("Subtotal", FormatMoney(cur, t.Subtotal), layout.Regular(12), pal.TotalsText)
	y += totalsLineStep
	line("Tax ("+FormatRate(t.TaxRate)+"%)", FormatMoney(cur, t.TaxAmount), layout.Regular(12), pal.TotalsText)
	y += totalsLineStep
	if t.HasDiscount() {
		label := "Discount"
		if t.DiscountRate.IsPositive() {
			label += " (" + FormatRate(t.DiscountRate) + "%)"
		}
		line(label, "-"+FormatMoney(cur, t.DiscountAmount), layout.Regular(12), pal.TotalsText)
		y += totalsLineStep
	}

	s.Line(x+10, y, x+totalsWidth-10, y, pal.TotalsRule, 1)
	y += 8
	line("Total", FormatMoney(cur, t.Total), layout.Bold(16), pal.Accent)

	return layout.Section{Kind: layout.SectionTotals, Top: top, Bottom: top + totalsHeight, Instructions: s.Instructions()}
}

// footer places payment details, the glyph slot, the strip and the closing
// line. The glyph slot is reserved even without a glyph so the strip never
// moves.
func (p *plan) footer(top float64) (layout.Section, float64) {
	var s layout.Stream
	pal := p.cfg.Palette
	from := p.inv.From
	w := p.page.Width

	p.rule(&s, top)
	s.Text(layout.Text{X: Margin, Y: top + 12, Width: max(w-320, 0), Font: layout.Bold(12), Color: pal.Label,
		Value: paymentDetailsTag})
	s.Text(layout.Text{X: Margin, Y: top + 32, Width: max(w-320, 0), Font: layout.Regular(11), Color: pal.Body,
		Value: "Account: " + orDash(from.Email) + " | Bank: " + orDash(from.Name)})

	glyph := layout.Rect{X: w - Margin - GlyphSize, Y: top + glyphInset, W: GlyphSize, H: GlyphSize}
	if p.glyph != nil {
		s.Image(GlyphResource, glyph)
		s.Text(layout.Text{X: glyph.X, Y: glyph.Bottom() + glyphLabelGap, Width: GlyphSize, Align: layout.AlignCenter,
			Font: layout.Regular(9), Color: pal.Body, Value: glyphCaption})
	}

	stripY := max(top+stripOffset, glyph.Bottom()+glyphLabelRoom)
	s.Rect(layout.Rect{X: Margin, Y: stripY, W: w - 2*Margin, H: stripHeight}, layout.Fill(pal.Strip))
	s.Text(layout.Text{X: Margin, Y: stripY + thanksOffset, Width: w - 2*Margin, Align: layout.AlignCenter,
		Font: layout.Regular(thanksFont), Color: pal.Thanks, Value: thanksMessage})

	bottom := stripY + thanksOffset + thanksFont
	return layout.Section{Kind: layout.SectionFooter, Top: top, Bottom: bottom, Instructions: s.Instructions()}, stripY
}

func (p *plan) rule(s *layout.Stream, y float64) {
	s.Line(Margin, y, p.page.Width-Margin, y, p.cfg.Palette.Rule, 0.7)
}
