// Package excel implementa los colaboradores de hoja de cálculo: lectura de la
// plantilla de importación de movimientos y escritura del reporte de período.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

// Columnas de la plantilla de importación. Los nombres son el contrato con el
// colaborador de hoja de cálculo; el orden de columnas es libre.
var templateColumns = []string{
	"fecha", "tipo", "bodega", "contraparte", "responsable",
	"grupo_producto", "calidad", "espesor_mm", "ancho_mm", "largo_mm",
	"piezas", "precio_unitario",
}

// Valores aceptados en la columna "tipo".
const (
	typeReceipt = "ENTRADA"
	typeIssue   = "SALIDA"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006"}

// ReadMovements lee la primera hoja del libro y devuelve las filas crudas de la
// plantilla. Las filas ilegibles se devuelven como rechazos con motivo; solo un
// libro sin encabezado válido aborta la lectura completa.
func ReadMovements(r io.Reader) ([]dto.ImportRow, []dto.RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("la hoja %q está vacía", sheet)
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var parsed []dto.ImportRow
	var rejected []dto.RowError
	for i, raw := range rows[1:] {
		rowNumber := i + 2 // 1-based más la fila de encabezado
		if isBlank(raw) {
			continue
		}
		row, err := parseRow(raw, cols, rowNumber)
		if err != nil {
			rejected = append(rejected, dto.RowError{RowNumber: rowNumber, Reason: err.Error()})
			continue
		}
		parsed = append(parsed, row)
	}
	return parsed, rejected, nil
}

// headerIndex mapea nombre de columna → índice, validando que la plantilla
// tenga todas las columnas esperadas.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range templateColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("la plantilla no tiene la columna %q", required)
		}
	}
	return cols, nil
}

func parseRow(raw []string, cols map[string]int, rowNumber int) (dto.ImportRow, error) {
	cell := func(name string) string {
		idx := cols[name]
		if idx >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[idx])
	}

	date, err := parseDate(cell("fecha"))
	if err != nil {
		return dto.ImportRow{}, err
	}

	var operation string
	switch strings.ToUpper(cell("tipo")) {
	case typeReceipt:
		operation = entity.OperationReceipt
	case typeIssue:
		operation = entity.OperationIssue
	default:
		return dto.ImportRow{}, fmt.Errorf("tipo %q no es %s ni %s", cell("tipo"), typeReceipt, typeIssue)
	}

	thickness, err := parseFloat("espesor_mm", cell("espesor_mm"))
	if err != nil {
		return dto.ImportRow{}, err
	}
	width, err := parseFloat("ancho_mm", cell("ancho_mm"))
	if err != nil {
		return dto.ImportRow{}, err
	}
	length, err := parseFloat("largo_mm", cell("largo_mm"))
	if err != nil {
		return dto.ImportRow{}, err
	}
	pieces, err := strconv.Atoi(cell("piezas"))
	if err != nil {
		return dto.ImportRow{}, fmt.Errorf("piezas %q no es un entero", cell("piezas"))
	}

	price := decimal.Zero
	if raw := cell("precio_unitario"); raw != "" {
		price, err = decimal.NewFromString(raw)
		if err != nil {
			return dto.ImportRow{}, fmt.Errorf("precio_unitario %q no es un número", raw)
		}
	}

	return dto.ImportRow{
		RowNumber:    rowNumber,
		Date:         date,
		Operation:    operation,
		Warehouse:    cell("bodega"),
		Counterparty: cell("contraparte"),
		Responsible:  cell("responsable"),
		ProductGroup: cell("grupo_producto"),
		QualityGrade: cell("calidad"),
		ThicknessMm:  thickness,
		WidthMm:      width,
		LengthMm:     length,
		PieceCount:   pieces,
		UnitPrice:    price,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q ilegible", raw)
}

func parseFloat(column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q no es un número", column, raw)
	}
	return v, nil
}

func isBlank(raw []string) bool {
	for _, c := range raw {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
