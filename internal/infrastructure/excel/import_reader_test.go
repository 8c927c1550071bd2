package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/report"
	"github.com/jhoicas/Maderera-api/internal/infrastructure/excel"
)

var templateHeader = []any{
	"fecha", "tipo", "bodega", "contraparte", "responsable",
	"grupo_producto", "calidad", "espesor_mm", "ancho_mm", "largo_mm",
	"piezas", "precio_unitario",
}

// buildWorkbook arma un libro con la fila de encabezado dada y las filas de
// datos, y devuelve sus bytes.
func buildWorkbook(t *testing.T, header []any, rows ...[]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	writeRow := func(rowNumber int, values []any) {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, rowNumber)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	writeRow(1, header)
	for i, row := range rows {
		writeRow(2+i, row)
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadMovements_FilasValidas(t *testing.T) {
	book := buildWorkbook(t, templateHeader,
		[]any{"2026-03-12", "ENTRADA", "Central", "Aserradero El Roble", "M. Quintero", "Teca", "A", "25", "100", "4000", "10", ""},
		[]any{"12/03/2026", "SALIDA", "Central", "Muebles del Valle", "M. Quintero", "Pino", "B", "18,5", "90", "3000", "5", "450000.50"},
	)

	rows, rejected, err := excel.ReadMovements(book)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, entity.OperationReceipt, first.Operation)
	assert.Equal(t, "Central", first.Warehouse)
	assert.Equal(t, "Teca", first.ProductGroup)
	assert.Equal(t, "A", first.QualityGrade)
	assert.Equal(t, 25.0, first.ThicknessMm)
	assert.Equal(t, 10, first.PieceCount)
	assert.True(t, first.UnitPrice.IsZero(), "precio vacío queda en cero")

	second := rows[1]
	assert.Equal(t, 3, second.RowNumber)
	assert.Equal(t, entity.OperationIssue, second.Operation)
	assert.Equal(t, "2026-03-12", second.Date.Format("2006-01-02"), "fecha en formato DD/MM/YYYY también se acepta")
	assert.Equal(t, 18.5, second.ThicknessMm, "decimal con coma se normaliza")
	assert.Equal(t, "450000.5", second.UnitPrice.String())
}

func TestReadMovements_FilasIlegiblesSeRechazanConMotivo(t *testing.T) {
	book := buildWorkbook(t, templateHeader,
		[]any{"no-es-fecha", "ENTRADA", "Central", "", "", "Teca", "A", "25", "100", "4000", "10", ""},
		[]any{"2026-03-12", "TRASLADO", "Central", "", "", "Teca", "A", "25", "100", "4000", "10", ""},
		[]any{"2026-03-12", "ENTRADA", "Central", "", "", "Teca", "A", "25", "100", "4000", "diez", ""},
		[]any{"2026-03-12", "ENTRADA", "Central", "", "", "Teca", "A", "25", "100", "4000", "10", ""},
	)

	rows, rejected, err := excel.ReadMovements(book)
	require.NoError(t, err, "las filas ilegibles no abortan la lectura")

	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].RowNumber)

	require.Len(t, rejected, 3)
	assert.Equal(t, 2, rejected[0].RowNumber)
	assert.Contains(t, rejected[0].Reason, "fecha")
	assert.Equal(t, 3, rejected[1].RowNumber)
	assert.Contains(t, rejected[1].Reason, "tipo")
	assert.Equal(t, 4, rejected[2].RowNumber)
	assert.Contains(t, rejected[2].Reason, "piezas")
}

func TestReadMovements_FilasEnBlancoSeOmiten(t *testing.T) {
	book := buildWorkbook(t, templateHeader,
		[]any{"", "", "", "", "", "", "", "", "", "", "", ""},
		[]any{"2026-03-12", "ENTRADA", "Central", "", "", "Teca", "A", "25", "100", "4000", "10", ""},
	)

	rows, rejected, err := excel.ReadMovements(book)
	require.NoError(t, err)
	assert.Empty(t, rejected, "una fila en blanco no es un rechazo")
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].RowNumber)
}

func TestReadMovements_OrdenDeColumnasLibre(t *testing.T) {
	header := []any{
		"tipo", "fecha", "piezas", "bodega", "contraparte", "responsable",
		"grupo_producto", "calidad", "espesor_mm", "ancho_mm", "largo_mm", "precio_unitario",
	}
	book := buildWorkbook(t, header,
		[]any{"ENTRADA", "2026-03-12", "10", "Central", "", "", "Teca", "A", "25", "100", "4000", ""},
	)

	rows, rejected, err := excel.ReadMovements(book)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, rows, 1)
	assert.Equal(t, "Central", rows[0].Warehouse)
	assert.Equal(t, 10, rows[0].PieceCount)
}

func TestReadMovements_EncabezadoIncompletoAborta(t *testing.T) {
	header := []any{"fecha", "tipo", "bodega"}
	book := buildWorkbook(t, header, []any{"2026-03-12", "ENTRADA", "Central"})

	_, _, err := excel.ReadMovements(book)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columna")
}

func TestBuildStockReportXLSX_ContieneFilasYTotal(t *testing.T) {
	rows := []report.PeriodSummary{
		{
			Key:          report.GroupKey{ProductGroup: "Teca", QualityGrade: "A"},
			OpeningCount: 2, OpeningVolume: 0.2,
			ReceivedCount: 1, ReceivedVolume: 0.1,
			IssuedCount: 1, IssuedVolume: 0.1,
			ClosingCount: 2, ClosingVolume: 0.2,
		},
		{
			Key:           report.GroupKey{ProductGroup: "Pino", QualityGrade: "B"},
			ReceivedCount: 3, ReceivedVolume: 0.3,
			ClosingCount: 3, ClosingVolume: 0.3,
		},
	}

	data, err := excel.BuildStockReportXLSX("Ventana: 2026-03-10 a 2026-03-20", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("existencias", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ventana: 2026-03-10 a 2026-03-20", title)

	cell := func(ref string) string {
		v, err := f.GetCellValue("existencias", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Grupo", cell("A3"))
	assert.Equal(t, "Teca / A", cell("A4"))
	assert.Equal(t, "Pino / B", cell("A5"))
	assert.Equal(t, "TOTAL", cell("A6"))
	assert.Equal(t, "5", cell("H6"), "paquetes finales totales")
}
