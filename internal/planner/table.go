package planner

import (
	"math"
)

// Column indexes
const (
	ColDescription = iota
	ColQuantity
	ColAmount
)

// Columns holds the widths of the three table columns
type Columns struct {
	Description float64
	Quantity    float64
	Amount      float64
}

// TableLayout is the geometry of the items table. Heights are constants so
// the table's extent depends only on the row count.
type TableLayout struct {
	Top          float64
	Left         float64
	Width        float64
	HeaderHeight float64
	RowHeight    float64
	Rows         int
	Columns      Columns
}

// LayoutTable places a table of rows items. Description and quantity widths
// are floored to whole points and the amount column absorbs the remainder,
// so the columns always sum to width.
func LayoutTable(rows int, top, left, width float64, split ColumnSplit) TableLayout {
	if rows < 0 {
		rows = 0
	}
	if !split.valid() {
		split = DefaultColumnSplit
	}
	desc := math.Floor(width * split.Description)
	qty := math.Floor(width * split.Quantity)

	return TableLayout{
		Top:          top,
		Left:         left,
		Width:        width,
		HeaderHeight: TableHeaderHeight,
		RowHeight:    TableRowHeight,
		Rows:         rows,
		Columns: Columns{
			Description: desc,
			Quantity:    qty,
			Amount:      width - desc - qty,
		},
	}
}

func (t TableLayout) TotalHeight() float64 {
	return t.HeaderHeight + float64(t.Rows)*t.RowHeight
}

func (t TableLayout) Bottom() float64 {
	return t.Top + t.TotalHeight()
}

// RowTop is the top edge of the 0-based row i
func (t TableLayout) RowTop(i int) float64 {
	return t.Top + t.HeaderHeight + float64(i)*t.RowHeight
}

// HeaderTextY vertically centres header text in the header band
func (t TableLayout) HeaderTextY() float64 {
	return t.Top + (t.HeaderHeight-tableHeaderFont)/2
}

// RowTextY vertically centres cell text in row i
func (t TableLayout) RowTextY(i int) float64 {
	return t.RowTop(i) + (t.RowHeight-tableRowFont)/2
}

// Column returns the left edge and width of column col
func (t TableLayout) Column(col int) (x, w float64) {
	switch col {
	case ColDescription:
		return t.Left, t.Columns.Description
	case ColQuantity:
		return t.Left + t.Columns.Description, t.Columns.Quantity
	default:
		return t.Left + t.Columns.Description + t.Columns.Quantity, t.Columns.Amount
	}
}

// Tinted reports whether row i gets the alternating background
func (t TableLayout) Tinted(i int) bool {
	return i%2 == 0
}
