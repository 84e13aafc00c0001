package service

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flexprice/invoicer/internal/api/dto"
	"github.com/flexprice/invoicer/internal/cache"
	"github.com/flexprice/invoicer/internal/domain/invoice"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/flexprice/invoicer/internal/s3"
	"github.com/flexprice/invoicer/internal/sentry"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// createAttempts bounds the retries when two creates race for the same number
const (
	createAttempts      = 3
	createRetryInterval = 20 * time.Millisecond
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error

	GetInvoicePDF(ctx context.Context, id, template string) (*dto.InvoicePDF, error)
	GetInvoicePDFUrl(ctx context.Context, id, template string) (string, error)
	RenderInvoicePDF(ctx context.Context, req dto.RenderInvoiceRequest, template string) (*dto.InvoicePDF, error)
	ArchiveInvoicePDFs(ctx context.Context, req dto.ArchiveInvoicesRequest) (*dto.ArchiveInvoicesResponse, error)

	ListTemplates(ctx context.Context) *dto.TemplatesResponse
}

type invoiceService struct {
	ServiceParams
	now func() time.Time
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var inv *invoice.Invoice
	create := func() error {
		created, err := s.createOnce(ctx, &req)
		if err != nil {
			if ierr.IsAlreadyExists(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		inv = created
		return nil
	}
	retry := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(createRetryInterval), createAttempts-1), ctx)
	notify := func(err error, wait time.Duration) {
		s.Logger.Warnw("invoice number taken, retrying", "wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(create, retry, notify); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"items", len(inv.Items),
		"total", inv.Total.Decimal.String())
	return dto.NewInvoiceResponse(inv), nil
}

// createOnce reads the latest number and inserts in one transaction. A
// concurrent insert of the same number fails on the unique index.
func (s *invoiceService) createOnce(ctx context.Context, req *dto.CreateInvoiceRequest) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		number, err := s.nextInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		inv = s.newInvoice(ctx, req, number)
		return s.InvoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) newInvoice(ctx context.Context, req *dto.CreateInvoiceRequest, number string) *invoice.Invoice {
	now := s.now()
	inv := req.ToInvoice(ctx)
	inv.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	inv.InvoiceNumber = number
	if inv.IssueDate == nil {
		inv.IssueDate = &now
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.RecomputeTotals()
	return inv
}

// nextInvoiceNumber follows the most recently created invoice
func (s *invoiceService) nextInvoiceNumber(ctx context.Context) (string, error) {
	latest, err := s.InvoiceRepo.GetLatest(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return invoice.FormatInvoiceNumber(1), nil
		}
		return "", err
	}
	return invoice.NextInvoiceNumber(latest.InvoiceNumber), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice_id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = dto.NewInvoiceResponse(inv)
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var inv *invoice.Invoice
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		req.Apply(inv)
		if err := dto.ValidateInvoice(inv); err != nil {
			return err
		}

		// keep updated_at strictly increasing, it versions cached and archived documents
		now := s.now()
		if !now.After(inv.UpdatedAt) {
			now = inv.UpdatedAt.Add(time.Millisecond)
		}
		inv.UpdatedAt = now
		inv.RecomputeTotals()

		return s.InvoiceRepo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.forgetRenderings(ctx, id)
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.forgetRenderings(ctx, id)
	return nil
}

func (s *invoiceService) GetInvoicePDF(ctx context.Context, id, template string) (*dto.InvoicePDF, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderStored(ctx, inv, template)
}

func (s *invoiceService) GetInvoicePDFUrl(ctx context.Context, id, template string) (string, error) {
	if s.S3 == nil {
		return "", ierr.NewError("s3 is not enabled").
			WithHint("Document archive is not enabled").
			Mark(ierr.ErrInvalidOperation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	ref := s3.NewDocumentRef(inv.ID, s.templateName(template), inv.UpdatedAt)
	exists, err := s.S3.Exists(ctx, ref)
	if err != nil {
		return "", err
	}

	if !exists {
		doc, err := s.renderStored(ctx, inv, ref.Variant)
		if err != nil {
			return "", err
		}
		if err := s.S3.UploadDocument(ctx, s3.NewPdfDocument(ref, doc.Data)); err != nil {
			return "", err
		}
	}

	return s.S3.GetPresignedUrl(ctx, ref)
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, req dto.RenderInvoiceRequest, template string) (*dto.InvoicePDF, error) {
	inv := req.ToInvoice()
	name := s.templateName(template)
	data, err := s.render(ctx, inv, name)
	if err != nil {
		return nil, err
	}
	return &dto.InvoicePDF{
		FileName: pdfFileName(inv),
		Template: name,
		Data:     data,
	}, nil
}

// ArchiveInvoicePDFs renders and uploads every invoice with at most
// render.concurrency renders in flight. A failure only fails its own entry.
func (s *invoiceService) ArchiveInvoicePDFs(ctx context.Context, req dto.ArchiveInvoicesRequest) (*dto.ArchiveInvoicesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.S3 == nil {
		return nil, ierr.NewError("s3 is not enabled").
			WithHint("Document archive is not enabled").
			Mark(ierr.ErrInvalidOperation)
	}

	template := s.templateName(req.Template)
	results := make([]dto.ArchiveResult, len(req.InvoiceIDs))

	p := pool.New().WithMaxGoroutines(s.concurrency())
	for i, id := range req.InvoiceIDs {
		p.Go(func() {
			results[i] = dto.ArchiveResult{InvoiceID: id, Success: true}
			if err := s.archiveOne(ctx, id, template); err != nil {
				results[i].Success = false
				results[i].Error = displayError(err)
				s.Logger.Warnw("failed to archive invoice pdf",
					"invoice_id", id,
					"template", template,
					"error", err)
			}
		})
	}
	p.Wait()

	resp := &dto.ArchiveInvoicesResponse{Template: template, Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	s.Logger.Infow("archived invoice pdfs",
		"template", template,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed)
	return resp, nil
}

func (s *invoiceService) archiveOne(ctx context.Context, id, template string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	doc, err := s.renderStored(ctx, inv, template)
	if err != nil {
		return err
	}

	ref := s3.NewDocumentRef(inv.ID, template, inv.UpdatedAt)
	return s.S3.UploadDocument(ctx, s3.NewPdfDocument(ref, doc.Data))
}

func (s *invoiceService) ListTemplates(_ context.Context) *dto.TemplatesResponse {
	return &dto.TemplatesResponse{
		Templates: s.Variants.Names(),
		Default:   s.Variants.Default(),
	}
}

// renderStored renders a stored invoice through the document cache. The key
// carries updated_at so an edit never serves an old rendering.
func (s *invoiceService) renderStored(ctx context.Context, inv *invoice.Invoice, template string) (*dto.InvoicePDF, error) {
	name := s.templateName(template)
	key := cache.DocumentKey(inv.ID, name, inv.UpdatedAt)

	if cached, ok := s.Cache.Get(ctx, key); ok {
		if data, ok := cached.([]byte); ok {
			return &dto.InvoicePDF{FileName: pdfFileName(inv), Template: name, Data: data}, nil
		}
	}

	data, err := s.render(ctx, inv, name)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, data, s.Config.Render.CacheTTL)
	return &dto.InvoicePDF{FileName: pdfFileName(inv), Template: name, Data: data}, nil
}

func (s *invoiceService) render(ctx context.Context, inv *invoice.Invoice, template string) ([]byte, error) {
	span, ctx := s.Sentry.StartRenderSpan(ctx, "invoice.render_pdf", map[string]interface{}{
		"invoice_id": inv.ID,
		"template":   template,
		"items":      len(inv.Items),
	})

	data, err := s.PDFGenerator.RenderInvoicePdf(ctx, inv, pdf.RenderOptions{Variant: template})
	sentry.FinishSpan(span, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *invoiceService) forgetRenderings(ctx context.Context, id string) {
	s.Cache.DeleteByPrefix(ctx, cache.DocumentPrefix(id))
}

// templateName resolves a requested template to the variant that is drawn,
// so unknown names share cache entries and archive keys with the default
func (s *invoiceService) templateName(template string) string {
	cfg, ok := s.Variants.Select(template)
	if !ok && template != "" {
		s.Logger.Warnw("unknown template, using default",
			"template", template,
			"default", cfg.Name)
	}
	return cfg.Name
}

func (s *invoiceService) concurrency() int {
	if n := s.Config.Render.Concurrency; n > 0 {
		return n
	}
	return 1
}

func pdfFileName(inv *invoice.Invoice) string {
	name := strings.TrimSpace(inv.InvoiceNumber)
	if name == "" {
		name = strings.TrimSpace(inv.ID)
	}
	if name == "" {
		return "invoice.pdf"
	}
	return "invoice-" + name + ".pdf"
}

// displayError prefers the user facing hint of err
func displayError(err error) string {
	if hint := ierr.DisplayMessage(err); hint != "" {
		return hint
	}
	return err.Error()
}
