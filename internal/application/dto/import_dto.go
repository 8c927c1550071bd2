package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow es una fila cruda de la plantilla de importación de movimientos.
// Los nombres de columna de la plantilla son el contrato implícito con el
// colaborador de hoja de cálculo (ver infrastructure/excel).
type ImportRow struct {
	RowNumber    int // fila en la hoja, para reportar rechazos
	Date         time.Time
	Operation    string // RECEIPT | ISSUE
	Warehouse    string
	Counterparty string
	Responsible  string
	ProductGroup string
	QualityGrade string
	ThicknessMm  float64
	WidthMm      float64
	LengthMm     float64
	PieceCount   int
	UnitPrice    decimal.Decimal // solo salidas
}

// RowError rechazo de una fila inválida con motivo legible. La fila se excluye
// del documento pero el resto del lote continúa.
type RowError struct {
	RowNumber int    `json:"row"`
	Reason    string `json:"reason"`
}

// DocumentDTO documento sintético creado por la importación.
type DocumentDTO struct {
	ID            string          `json:"id"`
	Operation     string          `json:"operation"`
	Date          string          `json:"date"`
	Warehouse     string          `json:"warehouse"`
	Counterparty  string          `json:"counterparty"`
	Responsible   string          `json:"responsible"`
	Events        int             `json:"events"`
	TotalVolumeM3 float64         `json:"total_volume_m3"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ImportResult resumen del lote importado.
type ImportResult struct {
	BatchID       string        `json:"batch_id"`
	RowsReceived  int           `json:"rows_received"`
	EventsCreated int           `json:"events_created"`
	Documents     []DocumentDTO `json:"documents"`
	Rejected      []RowError    `json:"rejected"`
}
