package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/ledger"
	"github.com/jhoicas/Maderera-api/internal/domain/report"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func event(op, pkg string, ts time.Time, group, grade string, thicknessMm, vol float64) entity.MovementEvent {
	return entity.MovementEvent{
		Operation:    op,
		PackageID:    pkg,
		Timestamp:    ts,
		ProductGroup: group,
		QualityGrade: grade,
		ThicknessMm:  thicknessMm,
		VolumeM3:     vol,
	}
}

func window(t *testing.T, from, to time.Time) ledger.Window {
	t.Helper()
	w, err := ledger.NewWindow(ptr(from), ptr(to))
	require.NoError(t, err)
	return w
}

// Escenario A de referencia: K1 entra antes de la ventana, K2 entra dentro,
// K1 sale dentro. Inicial {1, 0.5}; entradas {1, 0.3}; salidas {1, 0.5};
// final {1, 0.3}.
func TestAggregate_EscenarioReferencia(t *testing.T) {
	events := []entity.MovementEvent{
		event(entity.OperationReceipt, "K1", date(2024, 1, 1), "Teca", "A", 25, 0.5),
		event(entity.OperationReceipt, "K2", date(2024, 1, 15), "Teca", "A", 25, 0.3),
		event(entity.OperationIssue, "K1", date(2024, 1, 20), "Teca", "A", 25, 0.5),
	}
	w := window(t, date(2024, 1, 10), date(2024, 1, 31))

	rows, warnings, err := report.Aggregate(events, w, report.Ungrouped)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 1, r.OpeningCount)
	assert.InDelta(t, 0.5, r.OpeningVolume, 1e-9)
	assert.Equal(t, 1, r.ReceivedCount)
	assert.InDelta(t, 0.3, r.ReceivedVolume, 1e-9)
	assert.Equal(t, 1, r.IssuedCount)
	assert.InDelta(t, 0.5, r.IssuedVolume, 1e-9)
	assert.Equal(t, 1, r.ClosingCount, "solo K2 queda al cierre")
	assert.InDelta(t, 0.3, r.ClosingVolume, 1e-9)
}

func TestAggregate_InvariantePorGrupoYVentana(t *testing.T) {
	// Historia con varios grupos, calidades y espesores mezclados.
	events := []entity.MovementEvent{
		event(entity.OperationReceipt, "K1", date(2024, 1, 2), "Teca", "A", 25, 0.52),
		event(entity.OperationReceipt, "K2", date(2024, 1, 5), "Teca", "B", 25, 0.48),
		event(entity.OperationReceipt, "K3", date(2024, 1, 8), "Pino", "A", 50, 1.10),
		event(entity.OperationIssue, "K1", date(2024, 1, 12), "Teca", "A", 25, 0.52),
		event(entity.OperationReceipt, "K4", date(2024, 1, 18), "Pino", "A", 50, 0.95),
		event(entity.OperationIssue, "K3", date(2024, 1, 25), "Pino", "A", 50, 1.10),
		event(entity.OperationReceipt, "K5", date(2024, 2, 3), "Teca", "A", 32, 0.61),
	}

	windows := []ledger.Window{
		window(t, date(2024, 1, 1), date(2024, 1, 31)),
		window(t, date(2024, 1, 10), date(2024, 1, 20)),
		{From: ptr(date(2024, 1, 15))},
		{To: ptr(date(2024, 1, 15))},
		{},
	}
	strategies := []report.KeyFunc{report.ByProductQuality, report.ByThickness, report.Ungrouped}

	for _, w := range windows {
		for _, keyFn := range strategies {
			rows, _, err := report.Aggregate(events, w, keyFn)
			require.NoError(t, err)
			for _, r := range rows {
				assert.Equal(t, r.OpeningCount+r.ReceivedCount-r.IssuedCount, r.ClosingCount,
					"invariante de conteo para el grupo %q", r.Key.Label())
				assert.InDelta(t, r.OpeningVolume+r.ReceivedVolume-r.IssuedVolume, r.ClosingVolume, 1e-6,
					"invariante de volumen para el grupo %q", r.Key.Label())
			}
		}
	}
}

func TestAggregate_UnaFilaPorClaveObservada(t *testing.T) {
	events := []entity.MovementEvent{
		// Grupo solo con saldo inicial (entró antes, nunca se movió en la ventana)
		event(entity.OperationReceipt, "K1", date(2024, 1, 1), "Teca", "A", 25, 0.5),
		// Grupo solo con actividad en la ventana
		event(entity.OperationReceipt, "K2", date(2024, 1, 15), "Pino", "B", 50, 0.8),
	}
	w := window(t, date(2024, 1, 10), date(2024, 1, 31))

	rows, _, err := report.Aggregate(events, w, report.ByProductQuality)
	require.NoError(t, err)
	require.Len(t, rows, 2, "la unión de claves de apertura, cierre y actividad genera las filas")

	// Orden ascendente por clave: Pino/B antes que Teca/A
	assert.Equal(t, report.GroupKey{ProductGroup: "Pino", QualityGrade: "B"}, rows[0].Key)
	assert.Equal(t, report.GroupKey{ProductGroup: "Teca", QualityGrade: "A"}, rows[1].Key)

	teca := rows[1]
	assert.Equal(t, 1, teca.OpeningCount)
	assert.Zero(t, teca.ReceivedCount)
	assert.Equal(t, 1, teca.ClosingCount, "sin actividad el saldo final es igual al inicial")
}

func TestAggregate_AgrupacionPorEspesor(t *testing.T) {
	events := []entity.MovementEvent{
		event(entity.OperationReceipt, "K1", date(2024, 1, 15), "Teca", "A", 25, 0.5),
		event(entity.OperationReceipt, "K2", date(2024, 1, 16), "Pino", "B", 25, 0.4),
		event(entity.OperationReceipt, "K3", date(2024, 1, 17), "Teca", "A", 50, 1.0),
	}
	w := window(t, date(2024, 1, 1), date(2024, 1, 31))

	rows, _, err := report.Aggregate(events, w, report.ByThickness)
	require.NoError(t, err)
	require.Len(t, rows, 2, "dos clases de espesor: 25mm y 50mm")

	assert.Equal(t, report.GroupKey{ThicknessMm: 25}, rows[0].Key)
	assert.Equal(t, 2, rows[0].ReceivedCount, "grupos de producto distintos comparten la clase de 25mm")
	assert.InDelta(t, 0.9, rows[0].ReceivedVolume, 1e-9)
}

func TestAggregate_VentanaInvalida(t *testing.T) {
	w := ledger.Window{From: ptr(date(2024, 2, 1)), To: ptr(date(2024, 1, 1))}
	_, _, err := report.Aggregate(nil, w, report.Ungrouped)
	require.Error(t, err, "from > to se rechaza antes de calcular")
}

func TestAggregate_SalidaHuerfanaEnVentana(t *testing.T) {
	// La salida huérfana cuenta en los totales de salida pero no altera el
	// conjunto en bodega; la fila se emite con advertencia, nunca como falla.
	events := []entity.MovementEvent{
		event(entity.OperationIssue, "K9", date(2024, 2, 1), "Teca", "A", 25, 0.4),
	}
	w := window(t, date(2024, 1, 1), date(2024, 2, 28))

	rows, warnings, err := report.Aggregate(events, w, report.ByProductQuality)
	require.NoError(t, err, "dato sucio es advertencia, no falla del motor")
	require.Len(t, warnings, 1)
	assert.Equal(t, ledger.WarnOrphanIssue, warnings[0].Code)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].IssuedCount)
	assert.Zero(t, rows[0].ClosingCount)
}

func TestAggregate_AdvertenciasAnterioresALaVentanaTambienSeReportan(t *testing.T) {
	events := []entity.MovementEvent{
		event(entity.OperationIssue, "K9", date(2023, 12, 1), "Teca", "A", 25, 0.4),
		event(entity.OperationReceipt, "K1", date(2024, 1, 15), "Teca", "A", 25, 0.5),
	}
	w := window(t, date(2024, 1, 1), date(2024, 1, 31))

	rows, warnings, err := report.Aggregate(events, w, report.ByProductQuality)
	require.NoError(t, err)
	require.Len(t, warnings, 1, "la huérfana histórica aparece para visibilidad del operador")
	require.Len(t, rows, 1)
	// El invariante sí se verifica: el dato sucio quedó fuera de la ventana
	assert.Equal(t, 1, rows[0].ClosingCount)
}
