package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutTable_Linear(t *testing.T) {
	for n := 0; n <= 600; n++ {
		tl := LayoutTable(n, TableTop, Margin, 515.28, DefaultColumnSplit)
		assert.Equal(t, TableHeaderHeight+float64(n)*TableRowHeight, tl.TotalHeight())
		assert.Equal(t, tl.Top+tl.TotalHeight(), tl.Bottom())
	}
}

func TestLayoutTable_Columns(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		split ColumnSplit
		want  Columns
	}{
		{
			name:  "a4 default",
			width: 515.28,
			split: DefaultColumnSplit,
			want:  Columns{Description: 257, Quantity: 103, Amount: 515.28 - 257 - 103},
		},
		{
			name:  "custom split",
			width: 500,
			split: ColumnSplit{Description: 0.6, Quantity: 0.15},
			want:  Columns{Description: 300, Quantity: 75, Amount: 125},
		},
		{
			name:  "invalid split falls back",
			width: 500,
			split: ColumnSplit{Description: 0.9, Quantity: 0.2},
			want:  Columns{Description: 250, Quantity: 100, Amount: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := LayoutTable(3, 0, 0, tt.width, tt.split)
			assert.InDelta(t, tt.want.Description, tl.Columns.Description, 1e-9)
			assert.InDelta(t, tt.want.Quantity, tl.Columns.Quantity, 1e-9)
			assert.InDelta(t, tt.want.Amount, tl.Columns.Amount, 1e-9)
			assert.InDelta(t, tt.width, tl.Columns.Description+tl.Columns.Quantity+tl.Columns.Amount, 1e-9)
		})
	}
}

func TestLayoutTable_RowsAndText(t *testing.T) {
	tl := LayoutTable(4, 100, 40, 500, DefaultColumnSplit)

	assert.Equal(t, 130.0, tl.RowTop(0))
	assert.Equal(t, 158.0, tl.RowTop(1))
	assert.Equal(t, tl.RowTop(2)+(TableRowHeight-tableRowFont)/2, tl.RowTextY(2))
	assert.Equal(t, 100+(TableHeaderHeight-tableHeaderFont)/2, tl.HeaderTextY())

	assert.True(t, tl.Tinted(0))
	assert.False(t, tl.Tinted(1))
	assert.True(t, tl.Tinted(2))

	x, w := tl.Column(ColQuantity)
	assert.Equal(t, 40+tl.Columns.Description, x)
	assert.Equal(t, tl.Columns.Quantity, w)
	x, w = tl.Column(ColAmount)
	assert.Equal(t, 40+tl.Columns.Description+tl.Columns.Quantity, x)
	assert.Equal(t, tl.Columns.Amount, w)
}

func TestLayoutTable_NegativeRows(t *testing.T) {
	tl := LayoutTable(-2, 0, 0, 100, DefaultColumnSplit)
	assert.Equal(t, 0, tl.Rows)
	assert.Equal(t, TableHeaderHeight, tl.TotalHeight())
}
