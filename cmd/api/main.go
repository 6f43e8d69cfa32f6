package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventory-ledger-api/internal/app"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/mail"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventory-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventory-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	renderer, err := mail.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas de correo")
	}

	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}
	storage, closeStorage, err := app.OpenStorage(context.Background(), cfg.Storage.Driver, cfg.DB, cfg.DB.AutoMigrate, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	// A partir de aquí nada llama a Fatal: closeStorage debe ejecutarse.
	defer closeStorage()

	var mailer ports.Mailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			User:     cfg.Mail.User,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}, mail.DefaultBreakerConfig(), renderer, log.Component("mail"))
	} else {
		log.Info().Msg("SMTP_HOST vacío: los correos solo se registran en el log")
		mailer = mail.NewLogMailer(renderer, log.Component("mail"))
	}

	var (
		observer inventory.AdjustmentObserver
		m        *metrics.Metrics
	)
	if cfg.App.MetricsEnabled {
		m = metrics.New("inventory_ledger")
		observer = m
	}

	deps := app.Build(storage, app.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		DefaultLowStockThreshold: cfg.Inventory.LowStockThreshold,
		Mailer:                   mailer,
		Renderer:                 infrapdf.NewMarotoReportRenderer(),
		Spreadsheet:              xlsx.NewExcelizeReportExporter(),
		Observer:                 observer,
		Log:                      log,
	})

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New())
	fiberApp.Use(cors.New())
	fiberApp.Use(httpRouter.RequestLogger(log.Component("http")))
	if m != nil {
		fiberApp.Use(m.Middleware())
		fiberApp.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Inventory Ledger API",
		}))
	}

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(fiberApp, deps)

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
