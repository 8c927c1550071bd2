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

	"github.com/jhoicas/Maderera-api/internal/application/importer"
	"github.com/jhoicas/Maderera-api/internal/application/reporting"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Maderera-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Maderera-api/internal/interfaces/http"
	"github.com/jhoicas/Maderera-api/pkg/config"
	"github.com/jhoicas/Maderera-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var eventRepo repository.MovementEventRepository
	var docRepo repository.DocumentRepository
	switch cfg.App.Storage {
	case "memory":
		// Modo demo: log de movimientos en memoria, sin PostgreSQL.
		eventRepo = memory.NewMovementEventRepository()
		docRepo = memory.NewDocumentRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		eventRepo = postgres.NewMovementEventRepository(pool)
		docRepo = postgres.NewDocumentRepository(pool)
	}

	reportUC := reporting.NewStockReportUseCase(eventRepo, cfg.Report.TopN)
	importUC := importer.NewImportUseCase(eventRepo, docRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // plantillas XLSX grandes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Maderera API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC: reportUC,
		ImportUC: importUC,
		PDFGen:   pdfGenerator,
		Log:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
