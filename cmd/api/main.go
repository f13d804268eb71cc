package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	infrapdf "github.com/jhoicas/gst-invoice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/gst-invoice-api/internal/interfaces/http"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Archivos: logo del emisor y directorio temporal de PDFs
	fsys := afero.NewOsFs()
	logos := storage.NewFileLogoProvider(fsys, cfg.Invoice.LogoPath)
	if cfg.Invoice.LogoPath == "" {
		log.Warn().Msg("INVOICE_LOGO_PATH vacío, las facturas saldrán sin logo")
	}
	store, err := storage.NewFileInvoiceStore(fsys, cfg.Invoice.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Invoice.OutputDir).Msg("directorio de facturas")
	}

	// PDF: composición neutra + renderizado con Maroto
	renderer := infrapdf.NewMarotoRenderer(log.Component("pdf"))
	generateUC := billing.NewGenerateInvoiceUseCase(renderer, logos, store, billing.GenerateInvoiceConfig{
		BrandName:   cfg.Invoice.BrandName,
		Signatory:   cfg.Invoice.Signatory,
		StrictGSTIN: cfg.Invoice.StrictGSTIN,
		KeepFiles:   cfg.Invoice.KeepFiles,
		DefaultRates: gst.Rates{
			CGST: decimal.NewFromFloat(cfg.Tax.CGSTRate),
			SGST: decimal.NewFromFloat(cfg.Tax.SGSTRate),
			IGST: decimal.NewFromFloat(cfg.Tax.IGSTRate),
		},
	}, log.Zerolog())

	var limiter *httpRouter.IPRateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = httpRouter.NewIPRateLimiter(ctx, httpRouter.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		InvoiceUC:    generateUC,
		Logger:       log.Component("http"),
		BodyLimit:    cfg.HTTP.BodyLimit(),
		AllowOrigins: cfg.CORS.AllowOrigins,
		RateLimiter:  limiter,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "GST Invoice API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
