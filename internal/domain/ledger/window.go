// Package ledger implementa el núcleo de reconstrucción de existencias: la
// partición temporal del log de movimientos, la reproducción (replay) del
// conjunto de paquetes en bodega y el cálculo de volumen.
//
// Todas las funciones son puras: no hay I/O ni estado compartido, de modo que
// varios reportes concurrentes pueden ejecutarse sin sincronización.
package ledger

import (
	"time"

	"github.com/jhoicas/Maderera-api/internal/domain"
	"github.com/jhoicas/Maderera-api/internal/domain/entity"
)

// Window es la ventana de reporte, inclusiva en ambos extremos. Un extremo nil
// significa sin límite por ese lado. From se normaliza al inicio del día y To
// al final del día antes de comparar.
type Window struct {
	From *time.Time
	To   *time.Time
}

// NewWindow construye la ventana validando que From no sea posterior a To.
func NewWindow(from, to *time.Time) (Window, error) {
	w := Window{From: from, To: to}
	if from != nil && to != nil && startOfDay(*from).After(endOfDay(*to)) {
		return Window{}, domain.ErrInvalidWindow
	}
	return w, nil
}

// Bounds devuelve los límites normalizados (inicio y fin de día). Cualquiera
// puede ser nil si la ventana es abierta por ese lado.
func (w Window) Bounds() (from, to *time.Time) {
	if w.From != nil {
		f := startOfDay(*w.From)
		from = &f
	}
	if w.To != nil {
		t := endOfDay(*w.To)
		to = &t
	}
	return from, to
}

// Contains indica si el instante cae dentro de la ventana normalizada.
func (w Window) Contains(ts time.Time) bool {
	from, to := w.Bounds()
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		Add(24*time.Hour - time.Nanosecond)
}

// Partition separa el log plano de eventos en tres conjuntos disjuntos respecto
// a la ventana: anteriores, dentro y posteriores. La partición es total: cada
// evento cae exactamente en uno de los tres. No modifica el slice de entrada.
//
// Con From nil el conjunto "antes" queda vacío; con To nil queda vacío "después".
func Partition(events []entity.MovementEvent, w Window) (before, inWindow, after []entity.MovementEvent, err error) {
	from, to := w.Bounds()
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, nil, domain.ErrInvalidWindow
	}
	for _, e := range events {
		switch {
		case from != nil && e.Timestamp.Before(*from):
			before = append(before, e)
		case to != nil && e.Timestamp.After(*to):
			after = append(after, e)
		default:
			inWindow = append(inWindow, e)
		}
	}
	return before, inWindow, after, nil
}
