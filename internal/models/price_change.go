package models

import (
	"time"
)

// PriceChange logs a product's price update, written whenever an edit
// changes either the box or the piece price.
type PriceChange struct {
	BaseModel
	ProductName       string    `gorm:"size:150" json:"nombreProducto"`
	PreviousBoxPrice  float64   `json:"precioAnteriorCaja"`
	NewBoxPrice       float64   `json:"precioNuevoCaja"`
	PreviousUnitPrice float64   `json:"precioAnteriorPieza"`
	NewUnitPrice      float64   `json:"precioNuevoPieza"`
	RecordedAt        time.Time `json:"fechaRegistro"`
}
