package encoder

import (
	"bytes"
	"context"
	"time"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/layout"
	"github.com/jung-kurt/gofpdf"
)

const fontFamily = "Helvetica"

type pdfEncoder struct {
	clock   Clock
	creator string
}

// NewPDFEncoder returns an Encoder backed by gofpdf. Each call to Encode
// builds its own document, so one encoder is safe for concurrent use.
func NewPDFEncoder(opts ...Option) Encoder {
	e := &pdfEncoder{
		clock:   time.Now,
		creator: "invoicer",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *pdfEncoder) Encode(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, ierr.NewError("document is nil").
			WithHint("Nothing to encode").
			Mark(ierr.ErrSystem)
	}
	if err := doc.Page.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid page size").
			Mark(ierr.ErrSystem)
	}
	if err := ctx.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Rendering was cancelled").
			Mark(ierr.ErrSystem)
	}

	resources := make(map[string]layout.Bitmap, len(doc.Resources))
	for _, r := range doc.Resources {
		resources[r.Name] = r
	}
	for _, in := range doc.Instructions {
		if in.Op != layout.OpImage {
			continue
		}
		if _, ok := resources[in.Image]; !ok {
			return nil, ierr.NewErrorf("missing bitmap resource %q", in.Image).
				WithHint("The document references an image that was not supplied").
				WithReportableDetails(map[string]any{"resource": in.Image}).
				Mark(ierr.ErrSystem)
		}
	}

	now := e.clock()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Page.Width, Ht: doc.Page.Height},
	})
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator(e.creator, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), resources: resources}
	for _, in := range doc.Instructions {
		c.draw(in)
		if pdf.Err() {
			break
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to draw the document").
			Mark(ierr.ErrSystem)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to write the document").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}
