package dto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/invoicer/internal/domain/invoice"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/flexprice/invoicer/internal/validator"
)

// MaxArchiveBatch bounds a single archive request
const MaxArchiveBatch = 100

// LineItemRequest is one billed row
type LineItemRequest struct {
	// description is the text printed in the first column
	Description string `json:"description" validate:"required"`

	// quantity must be greater than zero; fractional values are printed rounded
	Quantity invoice.Number `json:"quantity"`

	// price is the unit price and must be greater than zero
	Price invoice.Number `json:"price"`
}

func (r LineItemRequest) toDomain() invoice.LineItem {
	return invoice.LineItem{
		Description: strings.TrimSpace(r.Description),
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// CreateInvoiceRequest represents the request payload for creating a new invoice.
// The invoice number and all amounts are assigned by the server.
type CreateInvoiceRequest struct {
	// issue_date defaults to the creation time
	IssueDate *time.Time `json:"issue_date,omitempty"`

	// from is the issuer
	From invoice.Party `json:"from"`

	// to is the recipient
	To invoice.Party `json:"to"`

	// items must hold at least one entry
	Items []LineItemRequest `json:"items" validate:"required,min=1,dive"`

	// tax_rate is a percentage, e.g. 18 for 18%
	TaxRate invoice.Number `json:"tax_rate"`

	// discount_rate is a percentage applied to the subtotal
	DiscountRate invoice.Number `json:"discount_rate"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return ValidateInvoice(r.ToInvoice(context.Background()))
}

// ToInvoice builds an unsaved invoice; id, number and totals are left to the service
func (r *CreateInvoiceRequest) ToInvoice(_ context.Context) *invoice.Invoice {
	items := make([]invoice.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toDomain())
	}
	return &invoice.Invoice{
		IssueDate:    r.IssueDate,
		From:         r.From,
		To:           r.To,
		Items:        items,
		TaxRate:      r.TaxRate,
		DiscountRate: r.DiscountRate,
	}
}

// UpdateInvoiceRequest replaces the fields that are present. Totals are
// recomputed after every update.
type UpdateInvoiceRequest struct {
	IssueDate    *time.Time         `json:"issue_date,omitempty"`
	From         *invoice.Party     `json:"from,omitempty"`
	To           *invoice.Party     `json:"to,omitempty"`
	Items        *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	TaxRate      *invoice.Number    `json:"tax_rate,omitempty"`
	DiscountRate *invoice.Number    `json:"discount_rate,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the present fields onto inv
func (r *UpdateInvoiceRequest) Apply(inv *invoice.Invoice) {
	if r.IssueDate != nil {
		inv.IssueDate = r.IssueDate
	}
	if r.From != nil {
		inv.From = *r.From
	}
	if r.To != nil {
		inv.To = *r.To
	}
	if r.Items != nil {
		inv.Items = make([]invoice.LineItem, 0, len(*r.Items))
		for _, item := range *r.Items {
			inv.Items = append(inv.Items, item.toDomain())
		}
	}
	if r.TaxRate != nil {
		inv.TaxRate = *r.TaxRate
	}
	if r.DiscountRate != nil {
		inv.DiscountRate = *r.DiscountRate
	}
}

// RenderInvoiceRequest is an invoice rendered as posted, without storing it.
// Every field is optional and explicit amounts are printed as given.
type RenderInvoiceRequest struct {
	ID             string             `json:"id,omitempty"`
	InvoiceNumber  string             `json:"invoice_number,omitempty"`
	IssueDate      *time.Time         `json:"issue_date,omitempty"`
	From           invoice.Party      `json:"from"`
	To             invoice.Party      `json:"to"`
	Items          []invoice.LineItem `json:"items"`
	Subtotal       invoice.Number     `json:"subtotal"`
	TaxRate        invoice.Number     `json:"tax_rate"`
	TaxAmount      invoice.Number     `json:"tax_amount"`
	DiscountRate   invoice.Number     `json:"discount_rate"`
	DiscountAmount invoice.Number     `json:"discount_amount"`
	Total          invoice.Number     `json:"total"`
}

func (r *RenderInvoiceRequest) ToInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:             r.ID,
		InvoiceNumber:  r.InvoiceNumber,
		IssueDate:      r.IssueDate,
		From:           r.From,
		To:             r.To,
		Items:          r.Items,
		Subtotal:       r.Subtotal,
		TaxRate:        r.TaxRate,
		TaxAmount:      r.TaxAmount,
		DiscountRate:   r.DiscountRate,
		DiscountAmount: r.DiscountAmount,
		Total:          r.Total,
	}
}

// GetInvoicePDFRequest carries the query of the pdf endpoint
type GetInvoicePDFRequest struct {
	Template string `form:"template"`
	URL      bool   `form:"url"`
}

// ArchiveInvoicesRequest renders and uploads many invoices
type ArchiveInvoicesRequest struct {
	InvoiceIDs []string `json:"invoice_ids" validate:"required,min=1,max=100,dive,required"`
	Template   string   `json:"template,omitempty"`
}

func (r *ArchiveInvoicesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ArchiveResult is the outcome for one invoice of a batch
type ArchiveResult struct {
	InvoiceID string `json:"invoice_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type ArchiveInvoicesResponse struct {
	Template  string          `json:"template"`
	Results   []ArchiveResult `json:"results"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// PresignedURLResponse points at an archived document
type PresignedURLResponse struct {
	PresignedURL string `json:"presigned_url"`
}

// InvoiceResponse represents the response payload for an invoice
type InvoiceResponse struct {
	*invoice.Invoice
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// ValidateInvoice applies the storage rules of an invoice and reports the
// failing field in the error details
func ValidateInvoice(inv *invoice.Invoice) error {
	err := inv.Validate()
	if err == nil {
		return nil
	}

	var verr *invoice.ValidationError
	if !ierr.As(err, &verr) {
		return ierr.WithError(err).WithHint("Invalid invoice").Mark(ierr.ErrValidation)
	}

	return ierr.WithError(err).
		WithHint(validationHint(verr)).
		WithField(verr.Field, verr.Message).
		Mark(ierr.ErrValidation)
}

func validationHint(verr *invoice.ValidationError) string {
	switch {
	case verr.Field == "from" || verr.Field == "to":
		return "Sender and recipient details are required"
	case verr.Field == "items":
		return "At least one item is required"
	case strings.HasPrefix(verr.Field, "items["):
		return "Each item must have a description, quantity > 0, price > 0"
	default:
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	}
}

// InvoicePDF is a rendered document and the file name it is served under
type InvoicePDF struct {
	FileName string
	Template string
	Data     []byte
}
