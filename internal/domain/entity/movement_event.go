package entity

import "time"

// Tipos de operación de un movimiento de paquetes.
const (
	OperationReceipt = "RECEIPT" // entrada de paquete a bodega
	OperationIssue   = "ISSUE"   // salida de paquete
)

// MovementEvent representa un hecho inmutable del log de movimientos: la entrada
// o salida de un paquete físico de madera. Se escribe una vez y nunca se modifica;
// todo saldo de inventario se reconstruye reproduciendo estos eventos.
type MovementEvent struct {
	ID           string
	Timestamp    time.Time
	Operation    string // OperationReceipt | OperationIssue
	PackageID    string // identificador único del paquete físico (prefijo K)
	ProductGroup string // grupo de producto (ej: "Teca", "Pino")
	QualityGrade string // calidad (ej: "A", "B", "C")
	ThicknessMm  float64
	WidthMm      float64
	LengthMm     float64
	PieceCount   int
	VolumeM3     float64
	Warehouse    string
	DocumentID   string // documento NK/XK que originó el movimiento
	CreatedAt    time.Time
}

// GroupDims expone las dimensiones de agrupación del evento.
func (e MovementEvent) GroupDims() (productGroup, qualityGrade string, thicknessMm float64) {
	return e.ProductGroup, e.QualityGrade, e.ThicknessMm
}

// PackageRecord es el registro derivado de un paquete actualmente en existencia:
// la entrada más reciente del paquete, válida mientras no se reproduzca una salida
// posterior con el mismo id. Nunca se persiste; se reconstruye en cada reporte.
type PackageRecord struct {
	PackageID    string
	ProductGroup string
	QualityGrade string
	ThicknessMm  float64
	WidthMm      float64
	LengthMm     float64
	PieceCount   int
	VolumeM3     float64
	Warehouse    string
	DocumentID   string
	ReceivedAt   time.Time
}

// GroupDims expone las dimensiones de agrupación del paquete.
func (p PackageRecord) GroupDims() (productGroup, qualityGrade string, thicknessMm float64) {
	return p.ProductGroup, p.QualityGrade, p.ThicknessMm
}

// Dimensioned lo implementan eventos y paquetes; permite aplicar la misma
// estrategia de agrupación a ambos sin duplicar lógica.
type Dimensioned interface {
	GroupDims() (productGroup, qualityGrade string, thicknessMm float64)
}
