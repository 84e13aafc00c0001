package planner

import (
	"math"

	"github.com/flexprice/invoicer/internal/layout"
)

// Fixed geometry, in points
const (
	Margin = 40.0

	logoTop     = 90.0
	logoSize    = 50.0
	companyGap  = 12.0
	boxWidth    = 230.0
	boxHeight   = 92.0
	boxRadius   = 10.0
	boxTop      = logoTop - 6
	boxPadding  = 16.0
	headerTop   = boxTop
	headerBot   = boxTop + boxHeight
	billToRule  = 194.0
	billToTop   = billToRule + 6
	billToBot   = 312.0
	billToWidth = 380.0

	TableTop          = 320.0
	TableHeaderHeight = 30.0
	TableRowHeight    = 28.0
	tableHeaderFont   = 13.0
	tableRowFont      = 12.0

	totalsWidth    = 280.0
	totalsHeight   = 130.0
	totalsRadius   = 8.0
	totalsPadding  = 14.0
	totalsLineStep = 22.0

	// ReservedFooterHeight is the band at the bottom of the page the footer
	// may always claim, even when the totals panel sits lower
	ReservedFooterHeight = 160.0

	GlyphSize      = 70.0
	glyphInset     = 8.0
	glyphLabelGap  = 6.0
	glyphLabelRoom = 20.0
	stripOffset    = 75.0
	stripHeight    = 4.0
	thanksOffset   = 14.0
	thanksFont     = 16.0
)

// Minimum vertical gaps between consecutive flow sections
const (
	GapHeaderBillTo = billToRule - headerBot
	GapBillToTable  = TableTop - billToBot
	GapTableTotals  = 20.0
	GapTotalsFooter = 28.0
)

// MinGap returns the minimum gap required between two consecutive sections,
// or zero when the pair is not part of the vertical flow
func MinGap(upper, lower layout.SectionKind) float64 {
	switch {
	case upper == layout.SectionHeader && lower == layout.SectionBillTo:
		return GapHeaderBillTo
	case upper == layout.SectionBillTo && lower == layout.SectionTable:
		return GapBillToTable
	case upper == layout.SectionTable && lower == layout.SectionTotals:
		return GapTableTotals
	case upper == layout.SectionTotals && lower == layout.SectionFooter:
		return GapTotalsFooter
	}
	return 0
}

// MaxItems is the largest item count that fits on the page without the
// footer clamp pulling the footer into the totals panel
func MaxItems(page layout.Page) int {
	if page.Validate() != nil {
		return 0
	}
	room := FooterLimit(page) - GapTotalsFooter - totalsHeight - GapTableTotals -
		TableHeaderHeight - TableTop
	if room < 0 {
		return 0
	}
	return int(math.Floor(room / TableRowHeight))
}

// FooterLimit is the lowest the footer may start
func FooterLimit(page layout.Page) float64 {
	return page.Height - ReservedFooterHeight
}
