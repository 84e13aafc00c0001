package layout

// SectionKind names a region of the page in render order
type SectionKind string

const (
	SectionBackground SectionKind = "background"
	SectionHeader     SectionKind = "header"
	SectionBillTo     SectionKind = "bill_to"
	SectionTable      SectionKind = "table"
	SectionTotals     SectionKind = "totals"
	SectionFooter     SectionKind = "footer"
)

// Section is a placed region of the page with its own instructions
type Section struct {
	Kind         SectionKind
	Top          float64
	Bottom       float64
	Instructions []Instruction
}

func (s Section) Height() float64 {
	return s.Bottom - s.Top
}

// Bitmap is an encoded raster image (PNG or JPEG) referenced by name from
// image instructions
type Bitmap struct {
	Name   string
	Data   []byte
	Format string
	Width  int
	Height int
}
