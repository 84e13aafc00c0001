package api

import (
	v1 "github.com/flexprice/invoicer/internal/api/v1"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/service"
)

// NewHandlers builds every v1 handler over the invoice service
func NewHandlers(invoiceService service.InvoiceService, log *logger.Logger) Handlers {
	return Handlers{
		Health:  v1.NewHealthHandler(log),
		Invoice: v1.NewInvoiceHandler(invoiceService, log),
		Render:  v1.NewRenderHandler(invoiceService, log),
	}
}
