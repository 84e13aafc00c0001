package invoice

import (
	"strings"
	"time"
)

// Invoice represents the invoice domain model. It is read-only for the
// duration of a render.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	From          Party      `json:"from"`
	To            Party      `json:"to"`
	Items         []LineItem `json:"items"`

	// Amounts are optional, missing ones are derived by ResolveTotals
	Subtotal       Number `json:"subtotal"`
	TaxRate        Number `json:"tax_rate"`
	TaxAmount      Number `json:"tax_amount"`
	DiscountRate   Number `json:"discount_rate"`
	DiscountAmount Number `json:"discount_amount"`
	Total          Number `json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Party is the issuer or the recipient of an invoice. Every field is optional.
type Party struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// IsZero reports whether no field of the party is set
func (p Party) IsZero() bool {
	return strings.TrimSpace(p.Name+p.Email+p.Address+p.City+p.State+p.Zip) == ""
}

// Locality joins city, state and zip the way the address block prints them,
// e.g. "Pune, MH 411001". Missing parts are skipped.
func (p Party) Locality() string {
	stateZip := strings.TrimSpace(p.State + " " + p.Zip)
	switch {
	case p.City != "" && stateZip != "":
		return p.City + ", " + stateZip
	case p.City != "":
		return p.City
	default:
		return stateZip
	}
}

// Clone returns a deep copy so callers can derive values without touching
// the original
func (i *Invoice) Clone() *Invoice {
	if i == nil {
		return nil
	}
	c := *i
	if i.IssueDate != nil {
		d := *i.IssueDate
		c.IssueDate = &d
	}
	if i.Items != nil {
		c.Items = make([]LineItem, len(i.Items))
		copy(c.Items, i.Items)
	}
	return &c
}
