package encoder

import (
	"bytes"
	"strings"

	"github.com/flexprice/invoicer/internal/layout"
	"github.com/jung-kurt/gofpdf"
)

const ellipsis = "..."

// canvas replays instructions onto one gofpdf page
type canvas struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	resources map[string]layout.Bitmap
}

func (c *canvas) draw(in layout.Instruction) {
	switch in.Op {
	case layout.OpRect:
		if style := c.paint(in.Style); style != "" {
			c.pdf.Rect(in.Rect.X, in.Rect.Y, in.Rect.W, in.Rect.H, style)
		}
	case layout.OpRoundedRect:
		if style := c.paint(in.Style); style != "" {
			c.pdf.RoundedRect(in.Rect.X, in.Rect.Y, in.Rect.W, in.Rect.H, in.Radius, "1234", style)
		}
	case layout.OpCircle:
		if style := c.paint(in.Style); style != "" {
			c.pdf.Circle(in.Center.X, in.Center.Y, in.Radius, style)
		}
	case layout.OpPath:
		c.path(in)
	case layout.OpLine:
		c.paint(in.Style)
		c.pdf.Line(in.From.X, in.From.Y, in.To.X, in.To.Y)
	case layout.OpText:
		c.text(in.Text)
	case layout.OpImage:
		c.image(in)
	}
}

// paint applies the style and returns the gofpdf style string, empty when
// nothing would be painted
func (c *canvas) paint(s layout.Style) string {
	var style string
	if s.Fill != nil {
		c.pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
		style += "F"
	}
	if s.Stroke != nil {
		c.pdf.SetDrawColor(int(s.Stroke.R), int(s.Stroke.G), int(s.Stroke.B))
		if s.LineWidth > 0 {
			c.pdf.SetLineWidth(s.LineWidth)
		}
		style += "D"
	}
	return style
}

func (c *canvas) path(in layout.Instruction) {
	style := c.paint(in.Style)
	if style == "" || len(in.Path.Segments) == 0 {
		return
	}
	for _, seg := range in.Path.Segments {
		switch seg.Kind {
		case layout.SegMove:
			c.pdf.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case layout.SegLine:
			c.pdf.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case layout.SegCubic:
			c.pdf.CurveBezierCubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		}
	}
	c.pdf.ClosePath()
	c.pdf.DrawPath(style)
}

func (c *canvas) text(t layout.Text) {
	if t.Value == "" {
		return
	}
	fontStyle := ""
	if t.Font.Weight == layout.WeightBold {
		fontStyle = "B"
	}
	c.pdf.SetFont(fontFamily, fontStyle, t.Font.Size)
	c.pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))

	value := c.tr(c.fit(t.Value, t.Width))
	align := "L"
	switch t.Align {
	case layout.AlignCenter:
		align = "C"
	case layout.AlignRight:
		align = "R"
	}

	c.pdf.SetXY(t.X, t.Y)
	c.pdf.CellFormat(t.Width, t.Font.Size, value, "", 0, align+"T", false, 0, "")
}

// fit shortens s with a trailing ellipsis until it fits width in the
// current font. A width of zero or less disables the check.
func (c *canvas) fit(s string, width float64) string {
	if width <= 0 || c.width(s) <= width {
		return s
	}
	r := []rune(strings.TrimRight(s, " "))
	for len(r) > 0 {
		r = r[:len(r)-1]
		candidate := strings.TrimRight(string(r), " ") + ellipsis
		if c.width(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func (c *canvas) width(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *canvas) image(in layout.Instruction) {
	bm := c.resources[in.Image]
	opts := gofpdf.ImageOptions{ImageType: imageType(bm.Format)}
	c.pdf.RegisterImageOptionsReader(bm.Name, opts, bytes.NewReader(bm.Data))
	if c.pdf.Err() {
		return
	}
	c.pdf.ImageOptions(bm.Name, in.Rect.X, in.Rect.Y, in.Rect.W, in.Rect.H, false, opts, 0, "")
}

func imageType(format string) string {
	if format == "" {
		return "PNG"
	}
	return strings.ToUpper(format)
}
