package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/flexprice/invoicer/internal/api/dto"
	"github.com/flexprice/invoicer/internal/domain/invoice"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/flexprice/invoicer/internal/s3"
	"github.com/flexprice/invoicer/internal/testutil"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/flexprice/invoicer/internal/variant"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     InvoiceService
	invoiceRepo *testutil.InMemoryInvoiceStore
	archive     *testutil.MockArchive
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.invoiceRepo = s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	s.archive = s.GetArchive()
	s.service = s.newService(true)
}

func (s *InvoiceServiceSuite) newService(withArchive bool) InvoiceService {
	params := ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		PDFGenerator: s.GetPDFGenerator(),
		Variants:     variant.NewRegistry(s.GetConfig().Render.DefaultVariant),
		Cache:        s.GetCache(),
		Sentry:       s.GetSentry(),
		DB:           s.GetDB(),
		InvoiceRepo:  s.invoiceRepo,
	}
	if withArchive {
		params.S3 = s.archive
	}
	return NewInvoiceService(params)
}

func (s *InvoiceServiceSuite) createRequest(items int) dto.CreateInvoiceRequest {
	req := dto.CreateInvoiceRequest{
		From:         invoice.Party{Name: "Acme Trading Co", City: "Pune"},
		To:           invoice.Party{Name: "Globex"},
		TaxRate:      invoice.NewNumberFromFloat(10),
		DiscountRate: invoice.NewNumberFromFloat(5),
	}
	for i := 0; i < items; i++ {
		req.Items = append(req.Items, dto.LineItemRequest{
			Description: "Widget",
			Quantity:    invoice.NewNumberFromFloat(2),
			Price:       invoice.NewNumberFromFloat(50),
		})
	}
	return req
}

func (s *InvoiceServiceSuite) seed(number string, createdAt time.Time) *invoice.Invoice {
	inv := testutil.NewTestInvoice(number, 2, createdAt)
	s.Require().NoError(s.invoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.createRequest(2))
	s.Require().NoError(err)

	s.Equal("INV-0001", resp.InvoiceNumber)
	s.Contains(resp.ID, types.UUID_PREFIX_INVOICE+"_")
	s.NotNil(resp.IssueDate)
	s.Equal("200", resp.Subtotal.Decimal.String())
	s.Equal("20", resp.TaxAmount.Decimal.String())
	s.Equal("10", resp.DiscountAmount.Decimal.String())
	s.Equal("210", resp.Total.Decimal.String())

	stored, err := s.invoiceRepo.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.InvoiceNumber, stored.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_CommitsOneUnitOfWork() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.createRequest(1))
	s.Require().NoError(err)
	s.Equal(1, s.GetDB().Committed())
	s.Equal(0, s.GetDB().RolledBack())
}

func (s *InvoiceServiceSuite) TestCreateInvoice_NumberSequence() {
	s.seed("INV-0041", s.GetNow().Add(-time.Hour))

	resp, err := s.service.CreateInvoice(s.GetContext(), s.createRequest(1))
	s.Require().NoError(err)
	s.Equal("INV-0042", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_NumberTakenGivesUp() {
	// the newest invoice points at a number an older one already holds
	s.seed("INV-0002", s.GetNow().Add(-2*time.Hour))
	s.seed("INV-0001", s.GetNow().Add(-time.Hour))

	_, err := s.service.CreateInvoice(s.GetContext(), s.createRequest(1))
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
	s.Equal(createAttempts, s.GetDB().RolledBack())
	s.Equal(0, s.GetDB().Committed())
}

func (s *InvoiceServiceSuite) TestCreateInvoice_UnparseableLatestRestarts() {
	s.seed("LEGACY", s.GetNow().Add(-time.Hour))

	resp, err := s.service.CreateInvoice(s.GetContext(), s.createRequest(1))
	s.Require().NoError(err)
	s.Equal("INV-0001", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_Validation() {
	req := s.createRequest(1)
	req.Items[0].Price = invoice.NewNumberFromFloat(0)

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestGetInvoice_NotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetInvoice(s.GetContext(), "")
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	base := s.GetNow().Add(-time.Hour)
	first := s.seed("INV-0001", base)
	first.To.Name = "Initech"
	s.Require().NoError(s.invoiceRepo.Update(s.GetContext(), first))
	s.seed("INV-0002", base.Add(time.Minute))
	s.seed("INV-0003", base.Add(2*time.Minute))

	resp, err := s.service.ListInvoices(s.GetContext(), types.NewInvoiceFilter())
	s.Require().NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Equal("INV-0003", resp.Items[0].InvoiceNumber, "newest first")

	filter := types.NewInvoiceFilter()
	filter.Search = "initech"
	resp, err = s.service.ListInvoices(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("INV-0001", resp.Items[0].InvoiceNumber)

	filter = types.NewInvoiceFilter()
	filter.Limit = lo.ToPtr(1)
	filter.Offset = lo.ToPtr(1)
	resp, err = s.service.ListInvoices(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("INV-0002", resp.Items[0].InvoiceNumber)
	s.Equal(3, resp.Pagination.Total)

	filter.Limit = lo.ToPtr(500)
	_, err = s.service.ListInvoices(s.GetContext(), filter)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoice_RecomputesAndInvalidates() {
	inv := s.seed("INV-0001", s.GetNow().Add(-time.Hour))

	_, err := s.service.GetInvoicePDF(s.GetContext(), inv.ID, "")
	s.Require().NoError(err)
	s.Equal(1, s.GetCache().ItemCount())

	rate := invoice.NewNumberFromFloat(0)
	resp, err := s.service.UpdateInvoice(s.GetContext(), inv.ID, dto.UpdateInvoiceRequest{TaxRate: &rate})
	s.Require().NoError(err)
	s.True(resp.TaxAmount.Decimal.IsZero())
	s.True(resp.Total.Decimal.Equal(resp.Subtotal.Decimal))
	s.True(resp.UpdatedAt.After(inv.UpdatedAt))
	s.Equal(0, s.GetCache().ItemCount())

	empty := []dto.LineItemRequest{}
	_, err = s.service.UpdateInvoice(s.GetContext(), inv.ID, dto.UpdateInvoiceRequest{Items: &empty})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateInvoice(s.GetContext(), "inv_missing", dto.UpdateInvoiceRequest{})
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoice_InvalidRollsBack() {
	inv := s.seed("INV-0001", s.GetNow())

	_, err := s.service.UpdateInvoice(s.GetContext(), inv.ID, dto.UpdateInvoiceRequest{From: &invoice.Party{}})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Equal(1, s.GetDB().RolledBack())

	stored, err := s.invoiceRepo.Get(s.GetContext(), inv.ID)
	s.Require().NoError(err)
	s.Equal(inv.From.Name, stored.From.Name)
	s.True(stored.UpdatedAt.Equal(inv.UpdatedAt))
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	inv := s.seed("INV-0001", s.GetNow())

	s.Require().NoError(s.service.DeleteInvoice(s.GetContext(), inv.ID))
	_, err := s.service.GetInvoice(s.GetContext(), inv.ID)
	s.True(ierr.IsNotFound(err))

	s.True(ierr.IsNotFound(s.service.DeleteInvoice(s.GetContext(), inv.ID)))
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF_Cached() {
	inv := s.seed("INV-0007", s.GetNow())

	first, err := s.service.GetInvoicePDF(s.GetContext(), inv.ID, "template2")
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(first.Data, []byte("%PDF-")))
	s.Equal("invoice-INV-0007.pdf", first.FileName)
	s.Equal("template2", first.Template)

	second, err := s.service.GetInvoicePDF(s.GetContext(), inv.ID, "template2")
	s.Require().NoError(err)
	s.Equal(first.Data, second.Data)
	s.Equal(1, s.GetCache().ItemCount())
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF_UnknownTemplateUsesDefault() {
	inv := s.seed("INV-0001", s.GetNow())

	doc, err := s.service.GetInvoicePDF(s.GetContext(), inv.ID, "no-such-template")
	s.Require().NoError(err)
	s.Equal(variant.DefaultName, doc.Template)
}

func (s *InvoiceServiceSuite) TestGetInvoicePDFUrl_UploadsWhenMissing() {
	inv := s.seed("INV-0001", s.GetNow())
	ref := s3.NewDocumentRef(inv.ID, "template3", inv.UpdatedAt)

	s.archive.On("Exists", mock.Anything, ref).Return(false, nil).Once()
	s.archive.On("UploadDocument", mock.Anything, mock.MatchedBy(func(d *s3.Document) bool {
		return d.DocumentRef == ref && bytes.HasPrefix(d.Data, []byte("%PDF-"))
	})).Return(nil).Once()
	s.archive.On("GetPresignedUrl", mock.Anything, ref).Return("https://bucket/signed", nil).Once()

	url, err := s.service.GetInvoicePDFUrl(s.GetContext(), inv.ID, "template3")
	s.Require().NoError(err)
	s.Equal("https://bucket/signed", url)
	s.archive.AssertExpectations(s.T())
}

func (s *InvoiceServiceSuite) TestGetInvoicePDFUrl_ExistingSkipsUpload() {
	inv := s.seed("INV-0001", s.GetNow())
	ref := s3.NewDocumentRef(inv.ID, variant.DefaultName, inv.UpdatedAt)

	s.archive.On("Exists", mock.Anything, ref).Return(true, nil).Once()
	s.archive.On("GetPresignedUrl", mock.Anything, ref).Return("https://bucket/signed", nil).Once()

	_, err := s.service.GetInvoicePDFUrl(s.GetContext(), inv.ID, "")
	s.Require().NoError(err)
	s.archive.AssertNotCalled(s.T(), "UploadDocument", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceSuite) TestGetInvoicePDFUrl_ArchiveDisabled() {
	inv := s.seed("INV-0001", s.GetNow())

	_, err := s.newService(false).GetInvoicePDFUrl(s.GetContext(), inv.ID, "")
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestRenderInvoicePDF() {
	req := dto.RenderInvoiceRequest{
		InvoiceNumber: "INV-9000",
		From:          invoice.Party{Name: "Acme"},
		Items: []invoice.LineItem{
			{Description: "Widget", Quantity: invoice.NewNumberFromFloat(1), Price: invoice.NewNumberFromFloat(5)},
		},
	}

	doc, err := s.service.RenderInvoicePDF(s.GetContext(), req, "template4")
	s.Require().NoError(err)
	s.Equal("invoice-INV-9000.pdf", doc.FileName)
	s.True(bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	s.Equal(0, s.GetCache().ItemCount(), "ad-hoc renders are not cached")
}

func (s *InvoiceServiceSuite) TestRenderInvoicePDF_Overflow() {
	req := dto.RenderInvoiceRequest{}
	for i := 0; i < 6; i++ {
		req.Items = append(req.Items, invoice.LineItem{Description: "Widget"})
	}

	_, err := s.service.RenderInvoicePDF(s.GetContext(), req, "")
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestArchiveInvoicePDFs() {
	a := s.seed("INV-0001", s.GetNow())
	b := s.seed("INV-0002", s.GetNow().Add(time.Second))

	s.archive.On("UploadDocument", mock.Anything, mock.Anything).Return(nil)

	resp, err := s.service.ArchiveInvoicePDFs(s.GetContext(), dto.ArchiveInvoicesRequest{
		InvoiceIDs: []string{a.ID, "inv_missing", b.ID},
		Template:   "template2",
	})
	s.Require().NoError(err)
	s.Equal("template2", resp.Template)
	s.Equal(2, resp.Succeeded)
	s.Equal(1, resp.Failed)
	s.Require().Len(resp.Results, 3)
	s.Equal(a.ID, resp.Results[0].InvoiceID)
	s.False(resp.Results[1].Success)
	s.NotEmpty(resp.Results[1].Error)
	s.True(resp.Results[2].Success)
	s.archive.AssertNumberOfCalls(s.T(), "UploadDocument", 2)
}

func (s *InvoiceServiceSuite) TestArchiveInvoicePDFs_RenderFailureIsPerInvoice() {
	a := s.seed("INV-0001", s.GetNow())
	b := s.seed("INV-0002", s.GetNow().Add(time.Second))

	generator := testutil.NewMockPDFGenerator()
	generator.On("RenderInvoicePdf", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.ID == a.ID
	}), mock.Anything).Return(nil, ierr.NewError("encoder failed").
		WithHint("Could not produce the document").
		Mark(ierr.ErrSystem))
	generator.On("RenderInvoicePdf", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.ID == b.ID
	}), pdf.RenderOptions{Variant: variant.DefaultName}).Return([]byte("%PDF-1.3 stub"), nil)
	s.archive.On("UploadDocument", mock.Anything, mock.Anything).Return(nil)

	svc := NewInvoiceService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		PDFGenerator: generator,
		Variants:     variant.NewRegistry(s.GetConfig().Render.DefaultVariant),
		Cache:        s.GetCache(),
		Sentry:       s.GetSentry(),
		DB:           s.GetDB(),
		S3:           s.archive,
		InvoiceRepo:  s.invoiceRepo,
	})

	resp, err := svc.ArchiveInvoicePDFs(s.GetContext(), dto.ArchiveInvoicesRequest{InvoiceIDs: []string{a.ID, b.ID}})
	s.Require().NoError(err)
	s.Equal(1, resp.Succeeded)
	s.Equal(1, resp.Failed)
	s.Equal("Could not produce the document", resp.Results[0].Error)
	s.True(resp.Results[1].Success)
	generator.AssertExpectations(s.T())
	s.archive.AssertNumberOfCalls(s.T(), "UploadDocument", 1)
}

func (s *InvoiceServiceSuite) TestArchiveInvoicePDFs_Validation() {
	_, err := s.service.ArchiveInvoicePDFs(s.GetContext(), dto.ArchiveInvoicesRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestListTemplates() {
	resp := s.service.ListTemplates(s.GetContext())
	s.Equal([]string{"template1", "template2", "template3", "template4"}, resp.Templates)
	s.Equal(variant.DefaultName, resp.Default)
}
