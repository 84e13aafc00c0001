package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/flexprice/invoicer/internal/api/dto"
	"github.com/flexprice/invoicer/internal/config"
	"github.com/flexprice/invoicer/internal/encoder"
	"github.com/flexprice/invoicer/internal/glyph"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/flexprice/invoicer/internal/variant"
)

func main() {
	in := flag.String("in", "", "Path to the invoice JSON file")
	out := flag.String("out", "invoice.pdf", "Path of the PDF to write")
	template := flag.String("template", "", "Template name, empty for the default")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Fatalw("Failed to read invoice", "path", *in, "error", err)
	}

	var req dto.RenderInvoiceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		logger.Fatalw("Failed to parse invoice", "path", *in, "error", err)
	}

	generator := pdf.NewGenerator(
		cfg,
		variant.NewRegistry(cfg.Render.DefaultVariant),
		glyph.NewResolver(glyph.NewQRProvider(), cfg, logger),
		encoder.NewPDFEncoder(),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := generator.RenderInvoicePdf(ctx, req.ToInvoice(), pdf.RenderOptions{Variant: *template})
	if err != nil {
		logger.Fatalw("Failed to render invoice", "error", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Fatalw("Failed to write pdf", "path", *out, "error", err)
	}

	logger.Infow("Invoice rendered", "path", *out, "bytes", len(data))
}
