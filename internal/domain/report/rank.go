package report

import "sort"

// Metric es la métrica de ordenamiento del ranking.
type Metric string

const (
	MetricReceivedVolume Metric = "received_volume"
	MetricIssuedVolume   Metric = "issued_volume"
	MetricClosingVolume  Metric = "closing_volume"
)

// DefaultTopN es el tamaño por defecto del ranking.
const DefaultTopN = 10

// MetricFor resuelve la métrica por nombre; nombre vacío usa volumen final.
func MetricFor(name string) (Metric, bool) {
	switch Metric(name) {
	case MetricReceivedVolume, MetricIssuedVolume, MetricClosingVolume:
		return Metric(name), true
	case "":
		return MetricClosingVolume, true
	default:
		return "", false
	}
}

func (m Metric) valueOf(s PeriodSummary) float64 {
	switch m {
	case MetricReceivedVolume:
		return s.ReceivedVolume
	case MetricIssuedVolume:
		return s.IssuedVolume
	default:
		return s.ClosingVolume
	}
}

// TopN ordena las filas de forma descendente por la métrica, con desempate
// estable lexicográfico por clave, y trunca a n elementos (n <= 0 usa
// DefaultTopN). Pura: no modifica el slice de entrada.
func TopN(summaries []PeriodSummary, metric Metric, n int) []PeriodSummary {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]PeriodSummary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := metric.valueOf(ranked[i]), metric.valueOf(ranked[j])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Key.Less(ranked[j].Key)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
