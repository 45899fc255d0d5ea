package models

// Role enum
type Role string

const (
	RolePatient Role = "Paciente"
	RoleClinic  Role = "Consultorio"
)

// Patient represents a person that can book appointments. Credentials
// live with the external auth service, not here.
type Patient struct {
	BaseModel
	FullName string `gorm:"size:150" json:"nombreCompleto"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"correo"`
	Phone    string `gorm:"size:20" json:"telefono"`
	Role     Role   `gorm:"size:20;default:'Paciente'" json:"rol"`
}
