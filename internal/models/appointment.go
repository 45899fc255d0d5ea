package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "Pendiente"
	StatusConfirmed   AppointmentStatus = "Confirmada"
	StatusAttended    AppointmentStatus = "Atendida"
	StatusCancelled   AppointmentStatus = "Cancelada"
	StatusNotAttended AppointmentStatus = "No atendida"
)

// Valid reports whether s is one of the five defined statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusAttended, StatusCancelled, StatusNotAttended:
		return true
	}
	return false
}

// Appointment represents a scheduled medical appointment. Appointments
// are never hard-deleted; cancellation is a status transition.
type Appointment struct {
	BaseModel
	PatientID string `gorm:"size:36;index" json:"paciente"`
	DoctorID  string `gorm:"size:36;index" json:"medico"`

	// Date is the calendar day at midnight in the facility timezone;
	// Hour carries the slot's "HH:MM" clock time.
	Date time.Time `json:"fecha"`
	Hour string    `gorm:"size:5" json:"hora"`

	Specialty string            `gorm:"size:100" json:"especialidad"`
	Reason    string            `gorm:"size:255" json:"motivo"`
	Status    AppointmentStatus `gorm:"size:20;default:'Pendiente'" json:"estado"`

	// Relations (preloaded for name/specialty projections)
	Patient *Patient `gorm:"foreignKey:PatientID" json:"pacienteInfo,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"medicoInfo,omitempty"`
}
