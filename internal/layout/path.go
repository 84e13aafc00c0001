package layout

type SegmentKind int

const (
	SegMove SegmentKind = iota
	SegLine
	SegCubic
)

// Segment is one path element. Cubic segments use all three points
// (two controls then the end point); move and line use only Pts[0].
type Segment struct {
	Kind SegmentKind
	Pts  [3]Point
}

// Path is a closed outline built from moves, lines and cubic curves
type Path struct {
	Segments []Segment
}

func NewPath(x, y float64) *Path {
	return &Path{Segments: []Segment{{Kind: SegMove, Pts: [3]Point{{X: x, Y: y}}}}}
}

func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: SegLine, Pts: [3]Point{{X: x, Y: y}}})
	return p
}

func (p *Path) CurveTo(cx0, cy0, cx1, cy1, x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{
		Kind: SegCubic,
		Pts:  [3]Point{{X: cx0, Y: cy0}, {X: cx1, Y: cy1}, {X: x, Y: y}},
	})
	return p
}

// Bounds returns the box spanned by every point of the path, control points
// included
func (p Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}
	first := p.Segments[0].Pts[0]
	minX, minY, maxX, maxY := first.X, first.Y, first.X, first.Y
	for _, s := range p.Segments {
		n := 1
		if s.Kind == SegCubic {
			n = 3
		}
		for _, pt := range s.Pts[:n] {
			minX = min(minX, pt.X)
			minY = min(minY, pt.Y)
			maxX = max(maxX, pt.X)
			maxY = max(maxY, pt.Y)
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
