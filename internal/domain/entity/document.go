package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document representa un documento de bodega (entrada NK o salida XK) generado
// por la importación: una agrupación de movimientos del mismo día, bodega,
// contraparte y responsable.
type Document struct {
	ID            string // consecutivo NK{yymmdd}-{nnn} o XK{yymmdd}-{nnn}
	Operation     string // OperationReceipt | OperationIssue
	Date          time.Time
	Warehouse     string
	Counterparty  string // proveedor (entradas) o cliente (salidas)
	Responsible   string
	TotalVolumeM3 float64
	TotalAmount   decimal.Decimal // suma de importes de línea; cero en entradas
	CreatedAt     time.Time
}
