package s3

import (
	"strconv"
	"strings"
	"time"
)

const contentTypePDF = "application/pdf"

// DocumentRef addresses one archived rendering: an invoice, the variant it was
// rendered with and the invoice revision it was rendered from
type DocumentRef struct {
	InvoiceID string `json:"invoice_id"`
	Variant   string `json:"variant"`
	Revision  string `json:"revision,omitempty"`
}

// NewDocumentRef uses the invoice's last update time as its revision
func NewDocumentRef(invoiceID, variant string, updatedAt time.Time) DocumentRef {
	ref := DocumentRef{InvoiceID: invoiceID, Variant: variant}
	if !updatedAt.IsZero() {
		ref.Revision = strconv.FormatInt(updatedAt.UnixMilli(), 10)
	}
	return ref
}

// Document is one rendered invoice stored in the archive bucket
type Document struct {
	DocumentRef
	Data []byte `json:"-"`
}

func NewPdfDocument(ref DocumentRef, data []byte) *Document {
	return &Document{DocumentRef: ref, Data: data}
}

// ObjectKey builds <prefix>/<variant>/<invoice id>[-<revision>].pdf, dropping the empty parts
func ObjectKey(prefix string, ref DocumentRef) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	if ref.Variant != "" {
		parts = append(parts, ref.Variant)
	}
	name := ref.InvoiceID
	if ref.Revision != "" {
		name += "-" + ref.Revision
	}
	parts = append(parts, name+".pdf")
	return strings.Join(parts, "/")
}
