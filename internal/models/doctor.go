package models

import (
	"gorm.io/datatypes"
)

// WorkingHours is a doctor's daily attention window, "HH:MM" 24h clock,
// start inclusive and end exclusive.
type WorkingHours struct {
	Start string `gorm:"column:schedule_start;size:5" json:"inicio"`
	End   string `gorm:"column:schedule_end;size:5" json:"fin"`
}

// Doctor represents a practitioner profile with its recurring
// availability rules. Read-only input to the scheduler.
type Doctor struct {
	BaseModel
	Name      string `gorm:"size:100" json:"nombre"`
	Specialty string `gorm:"size:100" json:"especialidad"`
	Email     string `gorm:"size:255" json:"correo"`
	Phone     string `gorm:"size:20" json:"telefono"`

	// WorkingDays holds Spanish weekday names ("lunes".."domingo");
	// they are matched case- and diacritics-insensitively.
	WorkingDays datatypes.JSONSlice[string] `json:"diasLaborales"`

	WorkingHours WorkingHours `gorm:"embedded" json:"horario"`

	// DailyLimit caps appointments per calendar day. Zero means the
	// default capacity applies.
	DailyLimit int `json:"citasPorDia"`
}
