package layout

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Page sizes are in PDF points with the origin at the top-left corner
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// ErrInvalidPage is returned for a page with a non-positive or non-finite dimension
var ErrInvalidPage = errors.New("page dimensions must be positive and finite")

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks the rectangle by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Page is the drawable surface
type Page struct {
	Width  float64
	Height float64
}

// A4 returns an A4 portrait page
func A4() Page {
	return Page{Width: A4Width, Height: A4Height}
}

func (p Page) Validate() error {
	if !positiveFinite(p.Width) || !positiveFinite(p.Height) {
		return errors.Wrapf(ErrInvalidPage, "got %vx%v", p.Width, p.Height)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
