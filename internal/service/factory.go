package service

import (
	"github.com/flexprice/invoicer/internal/cache"
	"github.com/flexprice/invoicer/internal/config"
	"github.com/flexprice/invoicer/internal/domain/invoice"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/flexprice/invoicer/internal/postgres"
	"github.com/flexprice/invoicer/internal/s3"
	"github.com/flexprice/invoicer/internal/sentry"
	"github.com/flexprice/invoicer/internal/variant"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator
	Variants     *variant.Registry
	Cache        cache.Cache
	Sentry       *sentry.Service
	DB           postgres.IClient

	// S3 is nil when the archive is disabled
	S3 s3.Service

	// Repositories
	InvoiceRepo invoice.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	pdfGenerator pdf.Generator,
	variants *variant.Registry,
	cache *cache.InMemoryCache,
	sentry *sentry.Service,
	db *postgres.DB,
	s3 s3.Service,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		PDFGenerator: pdfGenerator,
		Variants:     variants,
		Cache:        cache,
		Sentry:       sentry,
		DB:           db,
		S3:           s3,
		InvoiceRepo:  invoiceRepo,
	}
}
