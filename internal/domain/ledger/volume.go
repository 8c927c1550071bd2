package ledger

// VolumeM3 calcula el volumen en metros cúbicos de un paquete a partir de sus
// dimensiones en milímetros y el número de piezas:
//
//	espesor × ancho × largo × piezas / 1_000_000_000
//
// No valida positividad; el llamador debe rechazar dimensiones no positivas
// antes de invocar (ver importer).
func VolumeM3(thicknessMm, widthMm, lengthMm float64, pieceCount int) float64 {
	return thicknessMm * widthMm * lengthMm * float64(pieceCount) / 1_000_000_000
}
