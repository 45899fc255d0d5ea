package models

import (
	"time"
)

// HistoryRecord is the durable audit shadow of an Appointment. Every
// appointment owns exactly one record, created in the same transaction;
// all lookups and updates go through the AppointmentID back-reference.
type HistoryRecord struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex;not null" json:"cita"`

	PatientID string            `gorm:"size:36;index" json:"paciente"`
	DoctorID  string            `gorm:"size:36;index" json:"medico"`
	Specialty string            `gorm:"size:100" json:"especialidad"`
	Date      time.Time         `json:"fecha"`
	Hour      string            `gorm:"size:5" json:"hora"`
	Status    AppointmentStatus `gorm:"size:20;default:'Pendiente'" json:"estado"`
	Reason    string            `gorm:"size:255" json:"motivo"`

	// MedicalNotes holds free-text clinical observations added after
	// the visit.
	MedicalNotes string `gorm:"type:text" json:"observacionesMedicas"`

	// StatusUpdatedAt tracks the last status/field refresh.
	StatusUpdatedAt time.Time `json:"fechaActualizacion"`
}
