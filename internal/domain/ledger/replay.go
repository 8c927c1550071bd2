package ledger

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

// Códigos de advertencia de calidad de datos.
const (
	WarnDuplicateReceipt = "DUPLICATE_RECEIPT" // entrada repetida para un paquete ya en bodega
	WarnOrphanIssue      = "ORPHAN_ISSUE"      // salida de un paquete que no está en bodega
)

// Warning es una advertencia de calidad de datos detectada durante el replay.
// No aborta el cálculo: la política documentada es last-write-wins para entradas
// duplicadas e ignorar salidas huérfanas; la advertencia queda registrada para
// visibilidad del operador.
type Warning struct {
	Code    string
	Event   entity.MovementEvent
	Message string
}

// Replay reconstruye el conjunto de paquetes en bodega reproduciendo los eventos
// en orden cronológico (orden estable: los empates de timestamp conservan el
// orden original del log). Una entrada inserta o sobrescribe el registro del
// paquete; una salida lo elimina.
//
// El resultado es la definición operativa de "existencia": el tamaño del mapa es
// el conteo y la suma de VolumeM3 el volumen. No hay contador acumulado aparte
// que pueda divergir de la verdad a nivel de paquete.
func Replay(events []entity.MovementEvent) (map[string]entity.PackageRecord, []Warning) {
	ordered := make([]entity.MovementEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	held := make(map[string]entity.PackageRecord, len(ordered))
	var warnings []Warning

	for _, e := range ordered {
		switch e.Operation {
		case entity.OperationReceipt:
			if _, ok := held[e.PackageID]; ok {
				warnings = append(warnings, Warning{
					Code:    WarnDuplicateReceipt,
					Event:   e,
					Message: fmt.Sprintf("entrada repetida del paquete %s (documento %s); se conserva la última", e.PackageID, e.DocumentID),
				})
			}
			held[e.PackageID] = entity.PackageRecord{
				PackageID:    e.PackageID,
				ProductGroup: e.ProductGroup,
				QualityGrade: e.QualityGrade,
				ThicknessMm:  e.ThicknessMm,
				WidthMm:      e.WidthMm,
				LengthMm:     e.LengthMm,
				PieceCount:   e.PieceCount,
				VolumeM3:     e.VolumeM3,
				Warehouse:    e.Warehouse,
				DocumentID:   e.DocumentID,
				ReceivedAt:   e.Timestamp,
			}
		case entity.OperationIssue:
			if _, ok := held[e.PackageID]; !ok {
				warnings = append(warnings, Warning{
					Code:    WarnOrphanIssue,
					Event:   e,
					Message: fmt.Sprintf("salida del paquete %s sin entrada previa (documento %s); se ignora", e.PackageID, e.DocumentID),
				})
				continue
			}
			delete(held, e.PackageID)
		}
	}
	return held, warnings
}

// HeldVolume suma el volumen de los paquetes en bodega.
func HeldVolume(held map[string]entity.PackageRecord) float64 {
	var total float64
	for _, p := range held {
		total += p.VolumeM3
	}
	return total
}
