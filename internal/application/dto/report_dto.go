package dto

// PeriodSummaryDTO fila del reporte de período: saldo inicial, entradas,
// salidas y saldo final, en paquetes y en m³.
type PeriodSummaryDTO struct {
	Label          string  `json:"label"`
	ProductGroup   string  `json:"product_group,omitempty"`
	QualityGrade   string  `json:"quality_grade,omitempty"`
	ThicknessMm    float64 `json:"thickness_mm,omitempty"`
	OpeningCount   int     `json:"opening_count"`
	OpeningVolume  float64 `json:"opening_volume_m3"`
	ReceivedCount  int     `json:"received_count"`
	ReceivedVolume float64 `json:"received_volume_m3"`
	IssuedCount    int     `json:"issued_count"`
	IssuedVolume   float64 `json:"issued_volume_m3"`
	ClosingCount   int     `json:"closing_count"`
	ClosingVolume  float64 `json:"closing_volume_m3"`
}

// WarningDTO advertencia de calidad de datos detectada durante el replay.
// Se muestran como lista informativa; nunca bloquean el reporte.
type WarningDTO struct {
	Code       string `json:"code"`
	PackageID  string `json:"package_id"`
	DocumentID string `json:"document_id,omitempty"`
	Date       string `json:"date"`
	Message    string `json:"message"`
}

// StockReportResponse respuesta de GET /api/reports/stock.
type StockReportResponse struct {
	From     string             `json:"from,omitempty"`
	To       string             `json:"to,omitempty"`
	GroupBy  string             `json:"group_by"`
	Rows     []PeriodSummaryDTO `json:"rows"`
	Summary  PeriodSummaryDTO   `json:"summary"` // tarjeta global sin agrupar
	Warnings []WarningDTO       `json:"warnings"`
}

// TopReportResponse respuesta de GET /api/reports/stock/top.
type TopReportResponse struct {
	Metric string             `json:"metric"`
	Rows   []PeriodSummaryDTO `json:"rows"`
}
