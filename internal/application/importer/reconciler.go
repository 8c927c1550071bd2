// Package importer concilia filas tabulares de la plantilla de movimientos en
// documentos sintéticos NK/XK y eventos del log, asignando consecutivos de
// paquete y documento y calculando volúmenes e importes de línea.
package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maderera-api/internal/application/dto"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/idgen"
	"github.com/jhoicas/Maderera-api/internal/domain/ledger"
)

// ReconcileResult es el lote conciliado, listo para que el colaborador de
// persistencia lo agregue al log. Reconcile nunca escribe almacenamiento.
type ReconcileResult struct {
	Documents []entity.Document
	Events    []entity.MovementEvent
	Rejected  []dto.RowError
}

// documentKey agrupa filas en un documento sintético: mismo día, bodega,
// contraparte, responsable y operación.
type documentKey struct {
	day          string
	warehouse    string
	counterparty string
	responsible  string
	operation    string
}

// Reconcile valida cada fila de forma independiente (las inválidas se rechazan
// con motivo y el resto continúa), agrupa las válidas en un documento por
// (fecha, bodega, contraparte, responsable) y asigna consecutivos de documento
// y de paquete contra el conjunto completo de ids existentes más los ya
// asignados en el lote: datos históricos y registros nuevos nunca colisionan.
//
// El importe de línea (volumen × precio unitario) solo aplica a salidas.
func Reconcile(rows []dto.ImportRow, existingPackageIDs, existingDocumentIDs []string, now time.Time) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	groups := make(map[documentKey][]dto.ImportRow)
	for _, row := range rows {
		if reason, ok := validateRow(row); !ok {
			result.Rejected = append(result.Rejected, dto.RowError{RowNumber: row.RowNumber, Reason: reason})
			continue
		}
		key := documentKey{
			day:          row.Date.Format("2006-01-02"),
			warehouse:    row.Warehouse,
			counterparty: row.Counterparty,
			responsible:  row.Responsible,
			operation:    row.Operation,
		}
		groups[key] = append(groups[key], row)
	}

	// Orden determinista de asignación: por día, bodega, contraparte,
	// responsable y operación. Mismo lote, mismos consecutivos.
	keys := make([]documentKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.day != b.day {
			return a.day < b.day
		}
		if a.warehouse != b.warehouse {
			return a.warehouse < b.warehouse
		}
		if a.counterparty != b.counterparty {
			return a.counterparty < b.counterparty
		}
		if a.responsible != b.responsible {
			return a.responsible < b.responsible
		}
		return a.operation < b.operation
	})

	packageIDs := append([]string(nil), existingPackageIDs...)
	documentIDs := append([]string(nil), existingDocumentIDs...)

	for _, key := range keys {
		groupRows := groups[key]
		sort.SliceStable(groupRows, func(i, j int) bool {
			return groupRows[i].RowNumber < groupRows[j].RowNumber
		})

		docPrefix := idgen.ReceiptDocPrefix
		if key.operation == entity.OperationIssue {
			docPrefix = idgen.IssueDocPrefix
		}
		docID, err := idgen.Next(docPrefix, groupRows[0].Date, documentIDs)
		if err != nil {
			return nil, fmt.Errorf("asignar documento %s del %s: %w", docPrefix, key.day, err)
		}
		documentIDs = append(documentIDs, docID)

		doc := entity.Document{
			ID:           docID,
			Operation:    key.operation,
			Date:         groupRows[0].Date,
			Warehouse:    key.warehouse,
			Counterparty: key.counterparty,
			Responsible:  key.responsible,
			TotalAmount:  decimal.Zero,
			CreatedAt:    now,
		}

		for _, row := range groupRows {
			pkgID, err := idgen.Next(idgen.PackagePrefix, row.Date, packageIDs)
			if err != nil {
				return nil, fmt.Errorf("asignar paquete de la fila %d: %w", row.RowNumber, err)
			}
			packageIDs = append(packageIDs, pkgID)

			volume := ledger.VolumeM3(row.ThicknessMm, row.WidthMm, row.LengthMm, row.PieceCount)
			doc.TotalVolumeM3 += volume
			if row.Operation == entity.OperationIssue {
				lineAmount := decimal.NewFromFloat(volume).Mul(row.UnitPrice).Round(2)
				doc.TotalAmount = doc.TotalAmount.Add(lineAmount)
			}

			result.Events = append(result.Events, entity.MovementEvent{
				ID:           uuid.New().String(),
				Timestamp:    row.Date,
				Operation:    row.Operation,
				PackageID:    pkgID,
				ProductGroup: row.ProductGroup,
				QualityGrade: row.QualityGrade,
				ThicknessMm:  row.ThicknessMm,
				WidthMm:      row.WidthMm,
				LengthMm:     row.LengthMm,
				PieceCount:   row.PieceCount,
				VolumeM3:     volume,
				Warehouse:    key.warehouse,
				DocumentID:   docID,
				CreatedAt:    now,
			})
		}
		result.Documents = append(result.Documents, doc)
	}

	return result, nil
}

// validateRow valida una fila de forma independiente. Dimensiones o piezas no
// positivas son InvalidDimension; la fila se excluye con motivo legible.
func validateRow(row dto.ImportRow) (reason string, ok bool) {
	switch {
	case row.Date.IsZero():
		return "fecha vacía o ilegible", false
	case row.Operation != entity.OperationReceipt && row.Operation != entity.OperationIssue:
		return fmt.Sprintf("tipo de operación desconocido %q", row.Operation), false
	case row.Warehouse == "":
		return "bodega vacía", false
	case row.ThicknessMm <= 0:
		return fmt.Sprintf("espesor no positivo (%v mm)", row.ThicknessMm), false
	case row.WidthMm <= 0:
		return fmt.Sprintf("ancho no positivo (%v mm)", row.WidthMm), false
	case row.LengthMm <= 0:
		return fmt.Sprintf("largo no positivo (%v mm)", row.LengthMm), false
	case row.PieceCount <= 0:
		return fmt.Sprintf("número de piezas no positivo (%d)", row.PieceCount), false
	case row.Operation == entity.OperationIssue && row.UnitPrice.IsNegative():
		return "precio unitario negativo en salida", false
	default:
		return "", true
	}
}
