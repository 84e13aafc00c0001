package planner

import (
	"github.com/flexprice/invoicer/internal/layout"
)

// wave describes one closed wave layer: the right edge height and the curve
// back to the left edge, in offsets from the layer's base line
type wave struct {
	right, c0, c1, left float64
}

var (
	topWaves = []wave{
		{right: 80, c0: 110, c1: 40, left: 90},
		{right: 60, c0: 90, c1: 20, left: 70},
		{right: 40, c0: 70, c1: 0, left: 60},
	}
	// bottom layers are painted darkest first
	bottomWaves = []wave{
		{right: 40, c0: 10, c1: 130, left: 30},
		{right: 80, c0: 40, c1: 80, left: 50},
		{right: 110, c0: 80, c1: 120, left: 90},
	}
)

const (
	bottomWaveBand = 120.0
	bandHeight     = 64.0
	bandRule       = 3.0
	footBand       = 24.0
	barHeight      = 70.0
	borderInset    = 24.0
)

func (p *plan) background() layout.Section {
	var s layout.Stream
	w, h := p.page.Width, p.page.Height
	deco := p.cfg.Palette.Decoration

	switch p.cfg.Decoration {
	case DecorationBands:
		s.Rect(layout.Rect{X: 0, Y: 0, W: w, H: bandHeight}, layout.Fill(deco[0]))
		s.Rect(layout.Rect{X: 0, Y: bandHeight, W: w, H: bandRule}, layout.Fill(deco[1]))
		s.Rect(layout.Rect{X: 0, Y: h - footBand - bandRule, W: w, H: bandRule}, layout.Fill(deco[1]))
		s.Rect(layout.Rect{X: 0, Y: h - footBand, W: w, H: footBand}, layout.Fill(deco[0]))
	case DecorationHeaderBar:
		s.Rect(layout.Rect{X: 0, Y: 0, W: w, H: barHeight}, layout.Fill(deco[0]))
		s.Rect(layout.Rect{X: 0, Y: h - footBand/2, W: w, H: footBand / 2}, layout.Fill(deco[0]))
	case DecorationBorder:
		s.Rect(layout.Rect{X: borderInset, Y: borderInset, W: w - 2*borderInset, H: h - 2*borderInset},
			layout.Stroke(deco[0], 1))
	default:
		for i, wv := range topWaves {
			path := layout.NewPath(0, 0).
				LineTo(w, 0).
				LineTo(w, wv.right).
				CurveTo(w*0.75, wv.c0, w*0.25, wv.c1, 0, wv.left)
			s.FillPath(path, deco[i])
		}
		base := h - bottomWaveBand
		for i, wv := range bottomWaves {
			path := layout.NewPath(0, h).
				LineTo(w, h).
				LineTo(w, base+wv.right).
				CurveTo(w*0.75, base+wv.c0, w*0.25, base+wv.c1, 0, base+wv.left)
			s.FillPath(path, deco[len(deco)-1-i])
		}
	}

	return layout.Section{Kind: layout.SectionBackground, Top: 0, Bottom: h, Instructions: s.Instructions()}
}
