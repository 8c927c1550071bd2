// Package report implementa la agregación por período del log de movimientos:
// saldo inicial, entradas, salidas y saldo final por grupo de dimensiones, en
// conteo de paquetes y en volumen, más el ranking top-N.
package report

import (
	"fmt"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

// GroupKey identifica una fila del reporte. Es una tupla explícita con igualdad
// y orden definidos, nunca una concatenación de strings: dos combinaciones
// distintas de dimensiones jamás colisionan aunque serialicen igual.
type GroupKey struct {
	ProductGroup string
	QualityGrade string
	ThicknessMm  float64
}

// Less define el orden lexicográfico (grupo, calidad, espesor) usado como
// desempate estable en ordenamientos y rankings.
func (k GroupKey) Less(other GroupKey) bool {
	if k.ProductGroup != other.ProductGroup {
		return k.ProductGroup < other.ProductGroup
	}
	if k.QualityGrade != other.QualityGrade {
		return k.QualityGrade < other.QualityGrade
	}
	return k.ThicknessMm < other.ThicknessMm
}

// Label devuelve la etiqueta de presentación de la fila.
func (k GroupKey) Label() string {
	switch {
	case k.ProductGroup != "" || k.QualityGrade != "":
		return fmt.Sprintf("%s / %s", k.ProductGroup, k.QualityGrade)
	case k.ThicknessMm != 0:
		return fmt.Sprintf("%.0f mm", k.ThicknessMm)
	default:
		return "TOTAL"
	}
}

// KeyFunc extrae la clave de agrupación de un evento o paquete. El agregador se
// escribe una sola vez y se parametriza con esta función; una dimensión nueva es
// una KeyFunc nueva, no lógica duplicada.
type KeyFunc func(d entity.Dimensioned) GroupKey

// Nombres de las estrategias de agrupación expuestas por la API.
const (
	GroupByProductQuality = "product_quality"
	GroupByThickness      = "thickness"
	GroupByNone           = "none"
)

// ByProductQuality agrupa por (grupo de producto, calidad).
func ByProductQuality(d entity.Dimensioned) GroupKey {
	group, grade, _ := d.GroupDims()
	return GroupKey{ProductGroup: group, QualityGrade: grade}
}

// ByThickness agrupa por clase de espesor.
func ByThickness(d entity.Dimensioned) GroupKey {
	_, _, thickness := d.GroupDims()
	return GroupKey{ThicknessMm: thickness}
}

// Ungrouped coloca todo en un único grupo global (tarjeta resumen).
func Ungrouped(entity.Dimensioned) GroupKey {
	return GroupKey{}
}

// KeyFuncFor resuelve la estrategia por nombre. Nombre vacío o desconocido
// devuelve ok=false.
func KeyFuncFor(name string) (KeyFunc, bool) {
	switch name {
	case GroupByProductQuality:
		return ByProductQuality, true
	case GroupByThickness:
		return ByThickness, true
	case GroupByNone:
		return Ungrouped, true
	default:
		return nil, false
	}
}
