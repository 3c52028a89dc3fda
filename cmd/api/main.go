package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/globaltours/invoice-api/internal/application/analytics"
	"github.com/globaltours/invoice-api/internal/application/auth"
	"github.com/globaltours/invoice-api/internal/application/invoicing"
	"github.com/globaltours/invoice-api/internal/infrastructure/objectstore"
	infrapdf "github.com/globaltours/invoice-api/internal/infrastructure/pdf"
	"github.com/globaltours/invoice-api/internal/infrastructure/postgres"
	"github.com/globaltours/invoice-api/internal/infrastructure/redisstore"
	httpRouter "github.com/globaltours/invoice-api/internal/interfaces/http"
	"github.com/globaltours/invoice-api/pkg/config"
	"github.com/globaltours/invoice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	// Draft store is optional: without Redis the endpoints degrade to no-ops
	// and the form simply starts blank after a reload.
	var drafts *invoicing.DraftUseCase
	if cfg.Redis.Addr != "" {
		store, err := redisstore.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer store.Close()
		drafts = invoicing.NewDraftUseCase(store)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("draft store enabled")
	} else {
		drafts = invoicing.NewDraftUseCase(nil)
		log.Warn().Msg("REDIS_ADDR not set, invoice drafts disabled")
	}

	// Object storage is optional too: without it sharing falls back to the
	// download-then-attach message instead of a hosted PDF link.
	var artifacts invoicing.ArtifactStore
	if cfg.Storage.Endpoint != "" {
		store, err := objectstore.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("object storage connection")
		}
		artifacts = store
		log.Info().Str("endpoint", cfg.Storage.Endpoint).Msg("artifact store enabled")
	} else {
		log.Warn().Msg("STORAGE_ENDPOINT not set, shared PDFs will not be hosted")
	}

	invoiceUC := invoicing.NewInvoiceUseCase(invoiceRepo, drafts)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := invoicing.NewPDFUseCase(invoiceRepo, pdfGenerator, cfg.Business)
	shareUC := invoicing.NewShareUseCase(
		pdfUC, artifacts, cfg.Business,
		time.Duration(cfg.Storage.URLExpiry)*time.Minute,
		log.Zerolog(),
	)

	summaryUC := analytics.NewSummaryUseCase(invoiceRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Invoice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: invoiceUC,
		DraftUC:   drafts,
		PDFUC:     pdfUC,
		ShareUC:   shareUC,
		SummaryUC: summaryUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
