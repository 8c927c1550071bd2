package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/application/reporting"
	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/domain/report"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/excel"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/pdf"
)

const queryDateLayout = "2006-01-02"

// ReportHandler maneja las peticiones HTTP del reporte de existencias por
// período: JSON, ranking top-N y exportaciones XLSX/PDF.
type ReportHandler struct {
	uc     *reporting.StockReportUseCase
	pdfGen *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.StockReportUseCase, pdfGen *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdfGen: pdfGen}
}

// GetStockReport godoc
// @Summary      Reporte de existencias por período
// @Description  Reconstruye saldo inicial, entradas, salidas y saldo final por
//
//	grupo de dimensiones a partir del log de movimientos.
//
// @Tags         reports
// @Produce      json
// @Param        from       query  string  false  "Inicio de la ventana (YYYY-MM-DD). Vacío = desde el primer movimiento."
// @Param        to         query  string  false  "Fin de la ventana (YYYY-MM-DD, inclusive). Vacío = hasta el último."
// @Param        warehouse  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Param        group      query  string  false  "Agrupación: product_quality (defecto), thickness o none."
// @Success      200  {object}  dto.StockReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) GetStockReport(c *fiber.Ctx) error {
	params, err := parseReportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.uc.GetPeriodReport(c.Context(), params)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(resp)
}

// GetTopReport godoc
// @Summary      Ranking top-N de grupos de dimensiones
// @Tags         reports
// @Produce      json
// @Param        from       query  string  false  "Inicio de la ventana (YYYY-MM-DD)"
// @Param        to         query  string  false  "Fin de la ventana (YYYY-MM-DD, inclusive)"
// @Param        warehouse  query  string  false  "Filtrar por bodega"
// @Param        group      query  string  false  "Agrupación: product_quality (defecto), thickness o none"
// @Param        metric     query  string  false  "Métrica: closing_volume (defecto), received_volume o issued_volume"
// @Param        n          query  int     false  "Tamaño del ranking (defecto 10)"
// @Success      200  {object}  dto.TopReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/top [get]
func (h *ReportHandler) GetTopReport(c *fiber.Ctx) error {
	params, err := parseReportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	n := 0
	if raw := c.Query("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "n debe ser un entero positivo"})
		}
	}
	resp, err := h.uc.GetTopReport(c.Context(), reporting.TopParams{
		ReportParams: params,
		Metric:       c.Query("metric"),
		N:            n,
	})
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(resp)
}

// ExportXLSX godoc
// @Summary      Exportar el reporte de período como XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from       query  string  false  "Inicio de la ventana (YYYY-MM-DD)"
// @Param        to         query  string  false  "Fin de la ventana (YYYY-MM-DD, inclusive)"
// @Param        warehouse  query  string  false  "Filtrar por bodega"
// @Param        group      query  string  false  "Agrupación"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	params, err := parseReportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rows, _, err := h.uc.PeriodRows(c.Context(), params)
	if err != nil {
		return reportError(c, err)
	}
	data, err := excel.BuildStockReportXLSX(reportTitle(params), rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="existencias.xlsx"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar el reporte de período como PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from       query  string  false  "Inicio de la ventana (YYYY-MM-DD)"
// @Param        to         query  string  false  "Fin de la ventana (YYYY-MM-DD, inclusive)"
// @Param        warehouse  query  string  false  "Filtrar por bodega"
// @Param        group      query  string  false  "Agrupación"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	params, err := parseReportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rows, _, err := h.uc.PeriodRows(c.Context(), params)
	if err != nil {
		return reportError(c, err)
	}
	data, err := h.pdfGen.GenerateStockReportPDF(reportTitle(params), rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="existencias.pdf"`)
	return c.Send(data)
}

// parseReportParams lee los query params comunes de los reportes. Las fechas
// ausentes quedan en nil (ventana abierta por ese lado).
func parseReportParams(c *fiber.Ctx) (reporting.ReportParams, error) {
	params := reporting.ReportParams{
		Warehouse: c.Query("warehouse"),
		GroupBy:   c.Query("group"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return reporting.ReportParams{}, fmt.Errorf("from %q no tiene formato YYYY-MM-DD", raw)
		}
		params.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return reporting.ReportParams{}, fmt.Errorf("to %q no tiene formato YYYY-MM-DD", raw)
		}
		params.To = &t
	}
	return params, nil
}

func reportTitle(p reporting.ReportParams) string {
	from, to := "inicio", "hoy"
	if p.From != nil {
		from = p.From.Format(queryDateLayout)
	}
	if p.To != nil {
		to = p.To.Format(queryDateLayout)
	}
	return fmt.Sprintf("Ventana: %s a %s", from, to)
}

// reportError mapea los errores de los casos de uso de reportes a respuestas
// HTTP. Una ConsistencyFault es un defecto interno: 500 con código propio para
// que monitoreo la distinga de fallas de infraestructura.
func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidWindow) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_WINDOW", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var fault *report.ConsistencyFault
	if errors.As(err, &fault) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONSISTENCY_FAULT", Message: fault.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
