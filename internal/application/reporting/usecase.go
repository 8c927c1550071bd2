// Package reporting contiene los casos de uso de reportes de existencias: el
// reporte de período por grupo de dimensiones y el ranking top-N.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/ledger"
	"github.com/jhoicas/Maderera-api/internal/domain/report"
	"github.com/jhoicas/Maderera-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReportParams parámetros comunes de los reportes. From/To nil = ventana
// abierta por ese lado; Warehouse vacío = todas las bodegas; GroupBy vacío =
// agrupación por producto y calidad.
type ReportParams struct {
	From      *time.Time
	To        *time.Time
	Warehouse string
	GroupBy   string
}

// TopParams parámetros del ranking.
type TopParams struct {
	ReportParams
	Metric string
	N      int
}

// StockReportUseCase reconstruye el estado de inventario para una ventana de
// reporte a partir del log de movimientos. Sin estado entre peticiones: cada
// reporte lee un snapshot del log y calcula todo por replay.
type StockReportUseCase struct {
	eventRepo   repository.MovementEventRepository
	defaultTopN int
}

// NewStockReportUseCase construye el caso de uso. topN <= 0 usa el valor por
// defecto del ranking.
func NewStockReportUseCase(eventRepo repository.MovementEventRepository, topN int) *StockReportUseCase {
	if topN <= 0 {
		topN = report.DefaultTopN
	}
	return &StockReportUseCase{eventRepo: eventRepo, defaultTopN: topN}
}

// PeriodRows ejecuta el pipeline partición → replay → agregación y devuelve
// las filas de dominio con sus advertencias. Lo usan el reporte JSON y los
// exportadores XLSX/PDF.
func (uc *StockReportUseCase) PeriodRows(ctx context.Context, p ReportParams) ([]report.PeriodSummary, []ledger.Warning, error) {
	keyFn, ok := report.KeyFuncFor(groupByOrDefault(p.GroupBy))
	if !ok {
		return nil, nil, fmt.Errorf("agrupación %q: %w", p.GroupBy, domain.ErrInvalidInput)
	}
	w, err := ledger.NewWindow(p.From, p.To)
	if err != nil {
		return nil, nil, err
	}
	events, err := uc.loadEvents(ctx, p.Warehouse)
	if err != nil {
		return nil, nil, err
	}
	return report.Aggregate(events, w, keyFn)
}

// GetPeriodReport construye la respuesta del reporte de período, incluida la
// tarjeta resumen global (suma de todas las filas).
func (uc *StockReportUseCase) GetPeriodReport(ctx context.Context, p ReportParams) (*dto.StockReportResponse, error) {
	rows, warnings, err := uc.PeriodRows(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockReportResponse{
		GroupBy:  groupByOrDefault(p.GroupBy),
		Rows:     make([]dto.PeriodSummaryDTO, 0, len(rows)),
		Warnings: make([]dto.WarningDTO, 0, len(warnings)),
	}
	if p.From != nil {
		resp.From = p.From.Format(dateLayout)
	}
	if p.To != nil {
		resp.To = p.To.Format(dateLayout)
	}

	summary := dto.PeriodSummaryDTO{Label: "TOTAL"}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toSummaryDTO(r))
		summary.OpeningCount += r.OpeningCount
		summary.OpeningVolume += r.OpeningVolume
		summary.ReceivedCount += r.ReceivedCount
		summary.ReceivedVolume += r.ReceivedVolume
		summary.IssuedCount += r.IssuedCount
		summary.IssuedVolume += r.IssuedVolume
		summary.ClosingCount += r.ClosingCount
		summary.ClosingVolume += r.ClosingVolume
	}
	resp.Summary = summary

	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, dto.WarningDTO{
			Code:       warn.Code,
			PackageID:  warn.Event.PackageID,
			DocumentID: warn.Event.DocumentID,
			Date:       warn.Event.Timestamp.Format(dateLayout),
			Message:    warn.Message,
		})
	}
	return resp, nil
}

// GetTopReport construye el ranking top-N por la métrica indicada.
func (uc *StockReportUseCase) GetTopReport(ctx context.Context, p TopParams) (*dto.TopReportResponse, error) {
	metric, ok := report.MetricFor(p.Metric)
	if !ok {
		return nil, fmt.Errorf("métrica %q: %w", p.Metric, domain.ErrInvalidInput)
	}
	rows, _, err := uc.PeriodRows(ctx, p.ReportParams)
	if err != nil {
		return nil, err
	}
	n := p.N
	if n <= 0 {
		n = uc.defaultTopN
	}
	ranked := report.TopN(rows, metric, n)

	resp := &dto.TopReportResponse{
		Metric: string(metric),
		Rows:   make([]dto.PeriodSummaryDTO, 0, len(ranked)),
	}
	for _, r := range ranked {
		resp.Rows = append(resp.Rows, toSummaryDTO(r))
	}
	return resp, nil
}

func (uc *StockReportUseCase) loadEvents(ctx context.Context, warehouse string) ([]entity.MovementEvent, error) {
	if warehouse != "" {
		return uc.eventRepo.ListByWarehouse(ctx, warehouse)
	}
	return uc.eventRepo.ListAll(ctx)
}

func groupByOrDefault(groupBy string) string {
	if groupBy == "" {
		return report.GroupByProductQuality
	}
	return groupBy
}

func toSummaryDTO(r report.PeriodSummary) dto.PeriodSummaryDTO {
	return dto.PeriodSummaryDTO{
		Label:          r.Key.Label(),
		ProductGroup:   r.Key.ProductGroup,
		QualityGrade:   r.Key.QualityGrade,
		ThicknessMm:    r.Key.ThicknessMm,
		OpeningCount:   r.OpeningCount,
		OpeningVolume:  r.OpeningVolume,
		ReceivedCount:  r.ReceivedCount,
		ReceivedVolume: r.ReceivedVolume,
		IssuedCount:    r.IssuedCount,
		IssuedVolume:   r.IssuedVolume,
		ClosingCount:   r.ClosingCount,
		ClosingVolume:  r.ClosingVolume,
	}
}
