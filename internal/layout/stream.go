package layout

// Stream collects instructions in paint order. Every emitter appends exactly
// one instruction and touches nothing else.
type Stream struct {
	ins []Instruction
}

func (s *Stream) Rect(r Rect, style Style) {
	s.ins = append(s.ins, Instruction{Op: OpRect, Rect: r, Style: style})
}

func (s *Stream) RoundedRect(r Rect, radius float64, style Style) {
	s.ins = append(s.ins, Instruction{Op: OpRoundedRect, Rect: r, Radius: radius, Style: style})
}

func (s *Stream) Circle(cx, cy, radius float64, style Style) {
	s.ins = append(s.ins, Instruction{Op: OpCircle, Center: Point{X: cx, Y: cy}, Radius: radius, Style: style})
}

// FillPath closes p and fills it
func (s *Stream) FillPath(p *Path, c Color) {
	segs := make([]Segment, len(p.Segments))
	copy(segs, p.Segments)
	s.ins = append(s.ins, Instruction{Op: OpPath, Path: Path{Segments: segs}, Style: Fill(c)})
}

func (s *Stream) Line(x0, y0, x1, y1 float64, c Color, width float64) {
	s.ins = append(s.ins, Instruction{
		Op:    OpLine,
		From:  Point{X: x0, Y: y0},
		To:    Point{X: x1, Y: y1},
		Style: Stroke(c, width),
	})
}

func (s *Stream) Text(t Text) {
	if t.Align == "" {
		t.Align = AlignLeft
	}
	s.ins = append(s.ins, Instruction{Op: OpText, Text: t})
}

// Image places the named bitmap resource in r
func (s *Stream) Image(name string, r Rect) {
	s.ins = append(s.ins, Instruction{Op: OpImage, Image: name, Rect: r})
}

func (s *Stream) Len() int {
	return len(s.ins)
}

// Instructions returns the collected instructions. The stream must not be
// used afterwards.
func (s *Stream) Instructions() []Instruction {
	return s.ins
}
