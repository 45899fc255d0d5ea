package models

import (
	"time"
)

// InventoryLot is a received box lot of a product.
type InventoryLot struct {
	BaseModel
	BoxLot       string     `gorm:"size:64" json:"loteCaja" binding:"required"`
	SupplierName string     `gorm:"size:150" json:"nombreProveedor" binding:"required"`
	ProductName  string     `gorm:"size:150" json:"nombreProducto" binding:"required"`
	ReceivedAt   time.Time  `json:"fechaRecibido"`
	ExpiresAt    *time.Time `json:"fechaCaducidadLote,omitempty"`
	BoxCount     int        `json:"cantidadCajasLote"`
	DisplayStock int        `json:"stockExhibe"`
	DisplayMin   int        `json:"stockExhibeMin"`
	StorageStock int        `json:"stockAlmacen"`
	StorageMin   int        `json:"stockAlmacenMin"`
}
