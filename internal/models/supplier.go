package models

// Address is a supplier's postal address.
type Address struct {
	Street         string `gorm:"size:150" json:"calle"`
	InteriorNumber string `gorm:"size:20" json:"numeroInterior"`
	ExteriorNumber string `gorm:"size:20" json:"numeroExterior"`
	Neighborhood   string `gorm:"size:100" json:"colonia"`
	PostalCode     string `gorm:"size:10" json:"codigoPostal"`
	City           string `gorm:"size:100" json:"ciudad"`
}

// Supplier is a retail goods provider, identified by a unique folio.
type Supplier struct {
	BaseModel
	Folio   string  `gorm:"uniqueIndex;size:50;not null" json:"folioProveedor"`
	Name    string  `gorm:"size:150" json:"nombre"`
	Phone   string  `gorm:"size:20" json:"telefono"`
	Email   string  `gorm:"size:255" json:"correo"`
	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"direccion"`
}
