package importer_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/application/importer"
	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

var importNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func receiptRow(rowNumber int, day time.Time) dto.ImportRow {
	return dto.ImportRow{
		RowNumber:    rowNumber,
		Date:         day,
		Operation:    entity.OperationReceipt,
		Warehouse:    "Bodega Central",
		Counterparty: "Aserradero El Roble",
		Responsible:  "M. Quintero",
		ProductGroup: "Teca",
		QualityGrade: "A",
		ThicknessMm:  25,
		WidthMm:      100,
		LengthMm:     4000,
		PieceCount:   10,
	}
}

func issueRow(rowNumber int, day time.Time, price string) dto.ImportRow {
	row := receiptRow(rowNumber, day)
	row.Operation = entity.OperationIssue
	row.Counterparty = "Muebles del Valle"
	row.UnitPrice = decimal.RequireFromString(price)
	return row
}

func TestReconcile_AgrupaFilasEnDocumentosSinteticos(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	rows := []dto.ImportRow{
		receiptRow(2, day),
		receiptRow(3, day),
		issueRow(4, day, "500000"),
	}

	result, err := importer.Reconcile(rows, nil, nil, importNow)
	require.NoError(t, err)
	require.Len(t, result.Documents, 2, "entradas y salidas nunca comparten documento")
	assert.Empty(t, result.Rejected)

	nk, xk := result.Documents[0], result.Documents[1]
	assert.Equal(t, "NK260312-001", nk.ID, "documento de entrada con prefijo NK")
	assert.Equal(t, entity.OperationReceipt, nk.Operation)
	assert.Equal(t, "XK260312-001", xk.ID, "documento de salida con prefijo XK")
	assert.Equal(t, entity.OperationIssue, xk.Operation)

	require.Len(t, result.Events, 3)
	assert.Equal(t, "K260312-001", result.Events[0].PackageID)
	assert.Equal(t, "K260312-002", result.Events[1].PackageID)
	assert.Equal(t, "K260312-003", result.Events[2].PackageID, "los consecutivos de paquete son únicos entre documentos del día")
	assert.Equal(t, nk.ID, result.Events[0].DocumentID)
	assert.Equal(t, nk.ID, result.Events[1].DocumentID)
	assert.Equal(t, xk.ID, result.Events[2].DocumentID)
}

func TestReconcile_ConsecutivosContinuanDesdeLosExistentes(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	existingPackages := []string{"K260312-001", "K260312-007", "K260311-120"}
	existingDocs := []string{"NK260312-004"}

	result, err := importer.Reconcile([]dto.ImportRow{receiptRow(2, day)}, existingPackages, existingDocs, importNow)
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	assert.Equal(t, "K260312-008", result.Events[0].PackageID, "continúa desde el máximo del día, no desde el conteo")
	assert.Equal(t, "NK260312-005", result.Documents[0].ID)
}

func TestReconcile_FilasInvalidasNoAbortanElLote(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	bad := receiptRow(3, day)
	bad.PieceCount = 0
	badDims := receiptRow(4, day)
	badDims.ThicknessMm = -5

	result, err := importer.Reconcile([]dto.ImportRow{receiptRow(2, day), bad, badDims}, nil, nil, importNow)
	require.NoError(t, err)

	assert.Len(t, result.Events, 1, "la fila válida se concilia")
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 3, result.Rejected[0].RowNumber)
	assert.Contains(t, result.Rejected[0].Reason, "piezas")
	assert.Equal(t, 4, result.Rejected[1].RowNumber)
	assert.Contains(t, result.Rejected[1].Reason, "espesor")
}

func TestReconcile_VolumenEImporteDeLinea(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	rows := []dto.ImportRow{
		receiptRow(2, day),
		issueRow(3, day, "500000"),
	}

	result, err := importer.Reconcile(rows, nil, nil, importNow)
	require.NoError(t, err)
	require.Len(t, result.Documents, 2)

	nk, xk := result.Documents[0], result.Documents[1]

	// 25 × 100 × 4000 × 10 / 1e9 = 0.1 m³ por fila
	assert.InDelta(t, 0.1, nk.TotalVolumeM3, 1e-9)
	assert.True(t, nk.TotalAmount.IsZero(), "las entradas no llevan importe")

	assert.InDelta(t, 0.1, xk.TotalVolumeM3, 1e-9)
	assert.True(t, xk.TotalAmount.Equal(decimal.RequireFromString("50000.00")),
		"importe de salida = volumen × precio unitario, esperado 50000.00, fue %s", xk.TotalAmount)
}

func TestReconcile_DiasDistintosDocumentosDistintos(t *testing.T) {
	day1 := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	result, err := importer.Reconcile([]dto.ImportRow{receiptRow(2, day1), receiptRow(3, day2)}, nil, nil, importNow)
	require.NoError(t, err)

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "NK260312-001", result.Documents[0].ID)
	assert.Equal(t, "NK260313-001", result.Documents[1].ID, "cada día arranca su propio consecutivo")
}

func TestReconcile_SecuenciaDePaquetesAgotada(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	existing := make([]string, 0, 999)
	for i := 1; i <= 999; i++ {
		existing = append(existing, fmt.Sprintf("K260312-%03d", i))
	}

	_, err := importer.Reconcile([]dto.ImportRow{receiptRow(2, day)}, existing, nil, importNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
}

func TestReconcile_EsDeterminista(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	rows := []dto.ImportRow{
		issueRow(2, day, "100"),
		receiptRow(3, day),
		receiptRow(4, day),
	}

	first, err := importer.Reconcile(rows, nil, nil, importNow)
	require.NoError(t, err)
	second, err := importer.Reconcile(rows, nil, nil, importNow)
	require.NoError(t, err)

	require.Equal(t, len(first.Documents), len(second.Documents))
	for i := range first.Documents {
		assert.Equal(t, first.Documents[i].ID, second.Documents[i].ID, "mismo lote, mismos consecutivos")
	}
	require.Equal(t, len(first.Events), len(second.Events))
	for i := range first.Events {
		assert.Equal(t, first.Events[i].PackageID, second.Events[i].PackageID)
	}
}
