package v1

import (
	"net/http"

	"github.com/flexprice/invoicer/internal/api/dto"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/service"
	"github.com/gin-gonic/gin"
)

// RenderHandler serves documents for invoices that are never stored
type RenderHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewRenderHandler(invoiceService service.InvoiceService, logger *logger.Logger) *RenderHandler {
	return &RenderHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// RenderInvoice godoc
// @Summary Render an invoice without storing it
// @Description Lay out the posted invoice and return the PDF. Amounts are printed as given.
// @Tags Render
// @Accept json
// @Produce application/pdf
// @Param template query string false "Template name"
// @Param invoice body dto.RenderInvoiceRequest true "Invoice to render"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Router /render [post]
func (h *RenderHandler) RenderInvoice(c *gin.Context) {
	var req dto.RenderInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("Invalid request format").Mark(ierr.ErrValidation))
		return
	}

	pdf, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), req, c.Query("template"))
	if err != nil {
		c.Error(err)
		return
	}

	writePDF(c, pdf)
}

// ListTemplates godoc
// @Summary List templates
// @Tags Render
// @Produce json
// @Success 200 {object} dto.TemplatesResponse
// @Router /templates [get]
func (h *RenderHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.invoiceService.ListTemplates(c.Request.Context()))
}
