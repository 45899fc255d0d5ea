package models

// Specialty is a catalog entry for medical specialties.
type Specialty struct {
	BaseModel
	Name        string `gorm:"size:100" json:"especialidad"`
	Description string `gorm:"size:255" json:"descripcion"`
}
