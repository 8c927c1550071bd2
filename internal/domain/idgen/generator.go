// Package idgen asigna consecutivos de paquetes y documentos con el formato
// {prefijo}{aammdd}-{nnn}, libres de colisión dentro de un día y un prefijo.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Maderera-api/internal/domain"
)

// Prefijos de consecutivo.
const (
	PackagePrefix    = "K"  // paquete físico
	ReceiptDocPrefix = "NK" // documento de entrada
	IssueDocPrefix   = "XK" // documento de salida
)

const (
	dateLayout = "060102"
	maxSeq     = 999
)

// Next asigna el siguiente consecutivo para el prefijo y la fecha: uno más que
// el máximo encontrado entre existingIDs cuyo segmento de fecha coincide, o 001
// si no hay ninguno.
//
// Es determinista para el mismo snapshot de existingIDs y se recalcula del
// conjunto completo en cada asignación (no hay contador oculto): datos
// históricos cargados en paralelo y registros nuevos nunca colisionan. El ancho
// de la secuencia es fijo de 3 dígitos; superar 999 en un día devuelve
// domain.ErrSequenceExhausted.
func Next(prefix string, date time.Time, existingIDs []string) (string, error) {
	stem := prefix + date.Format(dateLayout) + "-"
	maxFound := 0
	for _, id := range existingIDs {
		rest, ok := strings.CutPrefix(id, stem)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil || seq <= 0 {
			continue
		}
		if seq > maxFound {
			maxFound = seq
		}
	}
	next := maxFound + 1
	if next > maxSeq {
		return "", fmt.Errorf("prefijo %s fecha %s: %w", prefix, date.Format("2006-01-02"), domain.ErrSequenceExhausted)
	}
	return fmt.Sprintf("%s%03d", stem, next), nil
}
