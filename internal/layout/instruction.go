package layout

// Op identifies the drawing operation carried by an Instruction
type Op string

const (
	OpRect        Op = "rect"
	OpRoundedRect Op = "rounded_rect"
	OpCircle      Op = "circle"
	OpPath        Op = "path"
	OpLine        Op = "line"
	OpText        Op = "text"
	OpImage       Op = "image"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type Weight string

const (
	WeightRegular Weight = "regular"
	WeightBold    Weight = "bold"
)

// Font is one of the standard sans faces at a given size
type Font struct {
	Weight Weight
	Size   float64
}

func Regular(size float64) Font { return Font{Weight: WeightRegular, Size: size} }
func Bold(size float64) Font    { return Font{Weight: WeightBold, Size: size} }

// Style describes how a shape is painted. A nil Fill or Stroke leaves that
// part unpainted.
type Style struct {
	Fill      *Color
	Stroke    *Color
	LineWidth float64
}

func Fill(c Color) Style {
	return Style{Fill: &c}
}

func Stroke(c Color, width float64) Style {
	return Style{Stroke: &c, LineWidth: width}
}

func FillStroke(fill, stroke Color, width float64) Style {
	return Style{Fill: &fill, Stroke: &stroke, LineWidth: width}
}

// Text is a single line of text placed in a box of the given width. Y is the
// top of the text line.
type Text struct {
	X, Y  float64
	Width float64
	Align Align
	Font  Font
	Color Color
	Value string
}

// Instruction is one placed drawing operation. Only the fields relevant to
// Op are set.
type Instruction struct {
	Op Op

	Rect   Rect
	Radius float64
	Center Point
	Path   Path
	From   Point
	To     Point
	Style  Style

	Text Text

	// Image names a bitmap resource handed to the encoder alongside the stream
	Image string
}
