package planner

import (
	"github.com/flexprice/invoicer/internal/layout"
)

// Decoration selects the background artwork drawn behind the content
type Decoration string

const (
	DecorationWaves     Decoration = "waves"
	DecorationBands     Decoration = "bands"
	DecorationHeaderBar Decoration = "header_bar"
	DecorationBorder    Decoration = "border"
)

// ColumnSplit gives the description and quantity columns as fractions of
// the table width. The amount column takes whatever is left.
type ColumnSplit struct {
	Description float64
	Quantity    float64
}

// DefaultColumnSplit is 50% description, 20% quantity, 30% amount
var DefaultColumnSplit = ColumnSplit{Description: 0.5, Quantity: 0.2}

func (s ColumnSplit) valid() bool {
	return s.Description > 0 && s.Quantity > 0 && s.Description+s.Quantity < 1
}

// Palette holds every colour the planner paints with
type Palette struct {
	Accent     layout.Color // logo, invoice box, table header, totals
	OnAccent   layout.Color
	Heading    layout.Color // company name
	Subtle     layout.Color // sender contact lines
	Label      layout.Color // section headings
	Ink        layout.Color
	Body       layout.Color
	TotalsText layout.Color
	Rule       layout.Color
	TotalsRule layout.Color
	RowBorder  layout.Color
	RowTint    layout.Color
	Strip      layout.Color
	Thanks     layout.Color

	// Decoration colours, lightest first for waves
	Decoration [3]layout.Color
}

// Config parameterises one visual variant. It never changes section order.
type Config struct {
	Name       string
	Palette    Palette
	Decoration Decoration
	Columns    ColumnSplit
	Currency   string
}

// DefaultConfig is the green waves design
func DefaultConfig() Config {
	return Config{
		Name:       "template1",
		Decoration: DecorationWaves,
		Columns:    DefaultColumnSplit,
		Currency:   "Rs.",
		Palette: Palette{
			Accent:     layout.MustHex("#2e8b57"),
			OnAccent:   layout.White,
			Heading:    layout.MustHex("#064e3b"),
			Subtle:     layout.MustHex("#234e3a"),
			Label:      layout.MustHex("#083f2f"),
			Ink:        layout.Black,
			Body:       layout.MustHex("#2f3f3f"),
			TotalsText: layout.MustHex("#333333"),
			Rule:       layout.MustHex("#d1d7d5"),
			TotalsRule: layout.MustHex("#e6eaea"),
			RowBorder:  layout.MustHex("#d0d7d3"),
			RowTint:    layout.MustHex("#f7faf7"),
			Strip:      layout.MustHex("#b4f1d2"),
			Thanks:     layout.MustHex("#0f3b2f"),
			Decoration: [3]layout.Color{
				layout.MustHex("#d4f8e8"),
				layout.MustHex("#b4f1d2"),
				layout.MustHex("#94eac0"),
			},
		},
	}
}

func (c Config) normalized() Config {
	if !c.Columns.valid() {
		c.Columns = DefaultColumnSplit
	}
	if c.Currency == "" {
		c.Currency = "Rs."
	}
	return c
}
