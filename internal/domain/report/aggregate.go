package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/Maderera-api/internal/domain/entity"
	"github.com/jhoicas/Maderera-api/internal/domain/ledger"
)

// volumeTolerance es la tolerancia de punto flotante al verificar el invariante
// de volumen (los conteos se verifican exactos).
const volumeTolerance = 1e-6

// PeriodSummary es una fila del reporte de período para una clave de grupo:
// saldo inicial, entradas, salidas y saldo final, en paquetes y en m³.
// El saldo final nunca se lee de almacenamiento: siempre se deriva por replay.
type PeriodSummary struct {
	Key            GroupKey
	OpeningCount   int
	OpeningVolume  float64
	ReceivedCount  int
	ReceivedVolume float64
	IssuedCount    int
	IssuedVolume   float64
	ClosingCount   int
	ClosingVolume  float64
}

// ConsistencyFault indica que el invariante final = inicial + entradas − salidas
// falló sobre datos limpios. Solo puede significar un defecto del motor de
// replay/agregación, nunca un estado legítimo de datos: es fatal para el
// reporte y jamás se corrige en silencio.
type ConsistencyFault struct {
	Key PeriodSummaryKeyError
}

// PeriodSummaryKeyError detalle de la fila que violó el invariante.
type PeriodSummaryKeyError struct {
	Key           GroupKey
	ClosingCount  int
	DerivedCount  int
	ClosingVolume float64
	DerivedVolume float64
}

func (f *ConsistencyFault) Error() string {
	return fmt.Sprintf(
		"falla de consistencia interna en el grupo %q: final(conteo=%d, vol=%.6f) ≠ inicial+entradas−salidas(conteo=%d, vol=%.6f)",
		f.Key.Key.Label(), f.Key.ClosingCount, f.Key.ClosingVolume, f.Key.DerivedCount, f.Key.DerivedVolume,
	)
}

// Aggregate produce una fila PeriodSummary por cada clave de grupo observada en
// la ventana, junto con las advertencias de calidad de datos del replay.
//
// Algoritmo:
//  1. Particionar los eventos con la ventana.
//  2. inicial = replay(antes); final = replay(antes ++ dentro), conservando el
//     orden cronológico en la concatenación.
//  3. Entradas y salidas se cuentan iterando directamente los eventos dentro de
//     la ventana (no se derivan de los mapas), agrupados por keyFn.
//  4. Se emite una fila por cada clave de la unión de los pasos 2 y 3.
//  5. Post-condición por fila: final = inicial + entradas − salidas (conteo
//     exacto, volumen con tolerancia). Una violación sobre datos sin
//     advertencias en la ventana es un ConsistencyFault fatal.
//
// El orden del resultado es por clave, ascendente; el ranking es del llamador.
func Aggregate(events []entity.MovementEvent, w ledger.Window, keyFn KeyFunc) ([]PeriodSummary, []ledger.Warning, error) {
	before, inWindow, _, err := ledger.Partition(events, w)
	if err != nil {
		return nil, nil, err
	}

	opening, _ := ledger.Replay(before)

	// El replay de cierre cubre toda la historia hasta el fin de la ventana;
	// sus advertencias son el superconjunto de las del replay de apertura.
	history := make([]entity.MovementEvent, 0, len(before)+len(inWindow))
	history = append(history, before...)
	history = append(history, inWindow...)
	closing, warnings := ledger.Replay(history)

	rows := make(map[GroupKey]*PeriodSummary)
	row := func(k GroupKey) *PeriodSummary {
		r, ok := rows[k]
		if !ok {
			r = &PeriodSummary{Key: k}
			rows[k] = r
		}
		return r
	}

	for _, p := range opening {
		r := row(keyFn(p))
		r.OpeningCount++
		r.OpeningVolume += p.VolumeM3
	}
	for _, p := range closing {
		r := row(keyFn(p))
		r.ClosingCount++
		r.ClosingVolume += p.VolumeM3
	}
	for _, e := range inWindow {
		r := row(keyFn(e))
		switch e.Operation {
		case entity.OperationReceipt:
			r.ReceivedCount++
			r.ReceivedVolume += e.VolumeM3
		case entity.OperationIssue:
			r.IssuedCount++
			r.IssuedVolume += e.VolumeM3
		}
	}

	// Claves con advertencias dentro de la ventana: para ellas la ecuación no
	// tiene por qué cumplirse (entrada duplicada o salida huérfana contada en
	// los totales pero sin efecto en el conjunto en bodega).
	dirty := make(map[GroupKey]bool)
	for _, warn := range warnings {
		if w.Contains(warn.Event.Timestamp) {
			dirty[keyFn(warn.Event)] = true
		}
	}

	out := make([]PeriodSummary, 0, len(rows))
	for _, r := range rows {
		derivedCount := r.OpeningCount + r.ReceivedCount - r.IssuedCount
		derivedVolume := r.OpeningVolume + r.ReceivedVolume - r.IssuedVolume
		if !dirty[r.Key] {
			if r.ClosingCount != derivedCount || math.Abs(r.ClosingVolume-derivedVolume) > volumeTolerance {
				return nil, nil, &ConsistencyFault{Key: PeriodSummaryKeyError{
					Key:           r.Key,
					ClosingCount:  r.ClosingCount,
					DerivedCount:  derivedCount,
					ClosingVolume: r.ClosingVolume,
					DerivedVolume: derivedVolume,
				}}
			}
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out, warnings, nil
}
