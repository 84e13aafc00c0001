package testutil

import (
	"fmt"
	"time"

	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/types"
)

// NewTestInvoice returns a stored-shape invoice with the given number and items
func NewTestInvoice(number string, items int, createdAt time.Time) *invoice.Invoice {
	issued := createdAt.Truncate(24 * time.Hour)
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: number,
		IssueDate:     &issued,
		From: invoice.Party{
			Name:    "Acme Trading Co",
			Email:   "billing@acme.test",
			Address: "12 MG Road",
			City:    "Pune",
			State:   "MH",
			Zip:     "411001",
		},
		To: invoice.Party{
			Name:  "Globex Corporation",
			Email: "ap@globex.test",
			City:  "Mumbai",
		},
		TaxRate:   invoice.NewNumberFromFloat(18),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	for i := 0; i < items; i++ {
		inv.Items = append(inv.Items, invoice.LineItem{
			Description: fmt.Sprintf("Consulting hours, week %d", i+1),
			Quantity:    invoice.NewNumberFromFloat(float64(i + 1)),
			Price:       invoice.NewNumberFromFloat(1500),
		})
	}
	inv.RecomputeTotals()
	return inv
}
