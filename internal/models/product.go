package models

// Product is a retail catalog entry.
type Product struct {
	BaseModel
	Barcode      string  `gorm:"size:64" json:"codigoBarras" binding:"required"`
	Name         string  `gorm:"size:150" json:"nombreProducto" binding:"required"`
	Size         string  `gorm:"size:50" json:"tamano" binding:"required"`
	Category     string  `gorm:"size:100" json:"categoriaMaquillaje"`
	Subcategory  string  `gorm:"size:100" json:"subcategoria"`
	Brand        string  `gorm:"size:100" json:"marca"`
	SupplierName string  `gorm:"size:150" json:"nombreProveedor" binding:"required"`
	BoxPrice     float64 `json:"precioCaja"`
	PiecePrice   float64 `json:"precioPieza"`
	PerBox       int     `json:"cantidadPorCaja"`
	Pieces       int     `json:"cantidadPiezas"`
	DisplayStock int     `json:"stockExhibe"`
	DisplayMin   int     `json:"stockExhibeMin"`
	StorageStock int     `json:"stockAlmacen"`
	StorageMin   int     `json:"stockAlmacenMin"`
	Image        string  `gorm:"size:255" json:"imagen"`
	Active       bool    `gorm:"default:true" json:"activo"`
}
