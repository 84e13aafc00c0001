package encoder

import (
	"context"
	"time"

	"github.com/flexprice/invoicer/internal/layout"
)

// MagicHeader starts every document produced by this package
const MagicHeader = "%PDF-"

// Document is everything an encoder needs for one single-page file
type Document struct {
	Page         layout.Page
	Instructions []layout.Instruction
	Resources    []layout.Bitmap
	Title        string
	Author       string
}

// Encoder turns an instruction stream into document bytes. Implementations
// return either a complete document or an error, never a partial buffer.
type Encoder interface {
	Encode(ctx context.Context, doc *Document) ([]byte, error)
}

// Clock supplies the timestamp written to the document info dictionary
type Clock func() time.Time

type Option func(*pdfEncoder)

// WithClock fixes the embedded timestamps, mainly for byte-for-byte
// comparisons in tests
func WithClock(c Clock) Option {
	return func(e *pdfEncoder) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithCreator sets the Creator entry of the info dictionary
func WithCreator(creator string) Option {
	return func(e *pdfEncoder) {
		e.creator = creator
	}
}
