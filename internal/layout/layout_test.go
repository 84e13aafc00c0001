package layout

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{name: "long form", input: "#1e3a8a", want: Color{R: 0x1e, G: 0x3a, B: 0x8a}},
		{name: "no hash", input: "ffffff", want: White},
		{name: "short form", input: "#f0a", want: Color{R: 0xff, G: 0x00, B: 0xaa}},
		{name: "surrounding space", input: "  #000000 ", want: Black},
		{name: "wrong length", input: "#12345", wantErr: true},
		{name: "not hex", input: "#zzzzzz", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustHex(t *testing.T) {
	assert.Equal(t, "#1e3a8a", MustHex("#1E3A8A").Hex())
	assert.Panics(t, func() { MustHex("nope") })
}

func TestPageValidate(t *testing.T) {
	assert.NoError(t, A4().Validate())

	for _, p := range []Page{
		{Width: 0, Height: 10},
		{Width: 10, Height: -1},
		{},
		{Width: math.Inf(1), Height: A4Height},
		{Width: A4Width, Height: math.NaN()},
	} {
		err := p.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPage))
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 70.0, r.Bottom())
	assert.Equal(t, Rect{X: 15, Y: 25, W: 90, H: 40}, r.Inset(5))
}

func TestPathBounds(t *testing.T) {
	assert.Equal(t, Rect{}, Path{}.Bounds())

	p := NewPath(10, 10).
		LineTo(50, 10).
		CurveTo(60, 0, 70, 30, 50, 40).
		LineTo(10, 40)

	// control points count towards the box
	assert.Equal(t, Rect{X: 10, Y: 0, W: 60, H: 40}, p.Bounds())
}

func TestStreamAppendsInOrder(t *testing.T) {
	var s Stream
	s.Rect(Rect{W: 10, H: 10}, Fill(Black))
	s.RoundedRect(Rect{W: 10, H: 10}, 4, Stroke(Black, 1))
	s.Circle(5, 5, 2, FillStroke(White, Black, 0.5))
	s.Line(0, 0, 10, 10, Black, 1)
	s.Text(Text{Value: "Invoice", Font: Bold(12)})
	s.Image("qr", Rect{W: 60, H: 60})

	require.Equal(t, 6, s.Len())
	ops := make([]Op, 0, s.Len())
	for _, in := range s.Instructions() {
		ops = append(ops, in.Op)
	}
	assert.Equal(t, []Op{OpRect, OpRoundedRect, OpCircle, OpLine, OpText, OpImage}, ops)

	text := s.Instructions()[4].Text
	assert.Equal(t, AlignLeft, text.Align)
	assert.Equal(t, WeightBold, text.Font.Weight)
}

func TestStreamFillPathCopiesSegments(t *testing.T) {
	var s Stream
	p := NewPath(0, 0).LineTo(10, 0).LineTo(10, 10)
	s.FillPath(p, Black)

	p.LineTo(0, 10)

	require.Equal(t, 1, s.Len())
	in := s.Instructions()[0]
	assert.Equal(t, OpPath, in.Op)
	assert.Len(t, in.Path.Segments, 3)
	require.NotNil(t, in.Style.Fill)
	assert.Nil(t, in.Style.Stroke)
}

func TestSectionHeight(t *testing.T) {
	assert.Equal(t, 30.0, Section{Top: 40, Bottom: 70}.Height())
}
