package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Maderera-api/internal/domain/report"
)

const reportSheet = "existencias"

// BuildStockReportXLSX arma el libro del reporte de período: una fila por
// grupo con saldo inicial, entradas, salidas y saldo final, más la fila TOTAL.
// Devuelve los bytes del .xlsx listos para descargar.
func BuildStockReportXLSX(title string, rows []report.PeriodSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", reportSheet)

	if err := f.SetCellValue(reportSheet, "A1", title); err != nil {
		return nil, fmt.Errorf("escribir título: %w", err)
	}

	headers := []string{
		"Grupo", "Inicial (paq)", "Inicial (m³)", "Entradas (paq)", "Entradas (m³)",
		"Salidas (paq)", "Salidas (m³)", "Final (paq)", "Final (m³)",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}

	var total report.PeriodSummary
	for i, r := range rows {
		values := []any{
			r.Key.Label(),
			r.OpeningCount, r.OpeningVolume,
			r.ReceivedCount, r.ReceivedVolume,
			r.IssuedCount, r.IssuedVolume,
			r.ClosingCount, r.ClosingVolume,
		}
		if err := writeRow(f, 4+i, values); err != nil {
			return nil, err
		}
		total.OpeningCount += r.OpeningCount
		total.OpeningVolume += r.OpeningVolume
		total.ReceivedCount += r.ReceivedCount
		total.ReceivedVolume += r.ReceivedVolume
		total.IssuedCount += r.IssuedCount
		total.IssuedVolume += r.IssuedVolume
		total.ClosingCount += r.ClosingCount
		total.ClosingVolume += r.ClosingVolume
	}

	totalRow := []any{
		"TOTAL",
		total.OpeningCount, total.OpeningVolume,
		total.ReceivedCount, total.ReceivedVolume,
		total.IssuedCount, total.IssuedVolume,
		total.ClosingCount, total.ClosingVolume,
	}
	if err := writeRow(f, 4+len(rows), totalRow); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNumber int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNumber)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, v); err != nil {
			return fmt.Errorf("escribir fila %d: %w", rowNumber, err)
		}
	}
	return nil
}
