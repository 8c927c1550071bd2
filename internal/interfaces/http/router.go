package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maderera-api/internal/application/importer"
	"github.com/jhoicas/Maderera-api/internal/application/reporting"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Maderera-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC *reporting.StockReportUseCase
	ImportUC *importer.ImportUseCase
	PDFGen   *pdf.MarotoReportGenerator
	Log      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Reportes de existencias
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFGen)
	reports.Get("/stock", reportHandler.GetStockReport)
	reports.Get("/stock/top", reportHandler.GetTopReport)
	reports.Get("/stock/export.xlsx", reportHandler.ExportXLSX)
	reports.Get("/stock/export.pdf", reportHandler.ExportPDF)

	// Importación de la plantilla de movimientos
	imports := api.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC, deps.Log)
	imports.Post("/movements", importHandler.ImportMovements)
}
