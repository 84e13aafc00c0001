package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/invoicer/internal/api"
	"github.com/flexprice/invoicer/internal/cache"
	"github.com/flexprice/invoicer/internal/config"
	"github.com/flexprice/invoicer/internal/encoder"
	"github.com/flexprice/invoicer/internal/glyph"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/pdf"
	"github.com/flexprice/invoicer/internal/postgres"
	"github.com/flexprice/invoicer/internal/repository"
	pgrepo "github.com/flexprice/invoicer/internal/repository/postgres"
	"github.com/flexprice/invoicer/internal/s3"
	"github.com/flexprice/invoicer/internal/sentry"
	"github.com/flexprice/invoicer/internal/service"
	"github.com/flexprice/invoicer/internal/types"
	"github.com/flexprice/invoicer/internal/validator"
	"github.com/flexprice/invoicer/internal/variant"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Document archive, nil when disabled
			s3.NewService,

			// Repositories
			repository.NewInvoiceRepository,
		),
		sentry.Module(),
		postgres.Module(),
	)

	// Render pipeline
	opts = append(opts,
		fx.Provide(
			provideVariants,
			provideGlyphResolver,
			provideEncoder,
			pdf.NewGenerator,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewInvoiceService,
		),
	)

	opts = append(opts,
		fx.Provide(
			api.NewHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideVariants(cfg *config.Configuration) *variant.Registry {
	return variant.NewRegistry(cfg.Render.DefaultVariant)
}

func provideGlyphResolver(cfg *config.Configuration, log *logger.Logger) *glyph.Resolver {
	return glyph.NewResolver(glyph.NewQRProvider(), cfg, log)
}

func provideEncoder() encoder.Encoder {
	return encoder.NewPDFEncoder()
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		applySchema(lc, db, log)
		startAPIServer(lc, r, cfg, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

// applySchema creates the tables before the server accepts traffic. Only
// local mode does this, deployed environments run cmd/migrate.
func applySchema(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Applying database schema...")
			if _, err := db.ExecContext(ctx, pgrepo.Schema); err != nil {
				log.Errorw("failed to apply schema", "error", err)
				return err
			}
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
