// Package pdf implementa la representación imprimible del reporte de período
// de existencias usando Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Reporte de existencias + ventana de fechas          │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Grupo | Inicial | Entradas | Salidas | Final          │
//	│         (paquetes y m³ por columna)                           │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTAL                                                        │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Maderera-api/internal/domain/report"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 85, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera el PDF del reporte de período.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(title string, rows []report.PeriodSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	var total report.PeriodSummary
	for _, r := range rows {
		m.AddRows(summaryRow(r.Key.Label(), r, false))
		total.OpeningCount += r.OpeningCount
		total.OpeningVolume += r.OpeningVolume
		total.ReceivedCount += r.ReceivedCount
		total.ReceivedVolume += r.ReceivedVolume
		total.IssuedCount += r.IssuedCount
		total.IssuedVolume += r.IssuedVolume
		total.ClosingCount += r.ClosingCount
		total.ClosingVolume += r.ClosingVolume
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow("TOTAL", total, true))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("REPORTE DE EXISTENCIAS POR PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Grupo", 4, align.Left),
		h("Inicial (paq / m³)", 2, align.Right),
		h("Entradas (paq / m³)", 2, align.Right),
		h("Salidas (paq / m³)", 2, align.Right),
		h("Final (paq / m³)", 2, align.Right),
	)
}

func summaryRow(label string, r report.PeriodSummary, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cell := func(content string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(content, props.Text{
			Size: 8, Align: a, Style: style, Top: 1,
		}))
	}
	pair := func(count int, volume float64) string {
		return fmt.Sprintf("%d / %.3f", count, volume)
	}
	return row.New(6).Add(
		cell(label, 4, align.Left),
		cell(pair(r.OpeningCount, r.OpeningVolume), 2, align.Right),
		cell(pair(r.ReceivedCount, r.ReceivedVolume), 2, align.Right),
		cell(pair(r.IssuedCount, r.IssuedVolume), 2, align.Right),
		cell(pair(r.ClosingCount, r.ClosingVolume), 2, align.Right),
	)
}
