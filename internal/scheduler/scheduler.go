package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"

	// defaultDailyLimit applies when a doctor profile has no explicit
	// per-day capacity.
	defaultDailyLimit = 10
)

// Scheduler validates and persists appointment requests against a
// doctor's availability rules, keeping each appointment's history
// record in sync.
type Scheduler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// New creates a Scheduler doing all calendar math in loc.
func New(db *gorm.DB, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{db: db, loc: loc, now: time.Now}
}

// CreateInput carries the booking fields shared by Create and Edit.
type CreateInput struct {
	DoctorID  string
	PatientID string
	Date      string // "AAAA-MM-DD"
	Hour      string // "HH:MM"
	Specialty string
	Reason    string
}

// slotRequest is a validated booking target.
type slotRequest struct {
	day    time.Time // midnight in the facility timezone
	hour   string    // canonical zero-padded "HH:MM"
	doctor models.Doctor
}

// Create books a new appointment after running the full validation
// chain, persisting the appointment and its history record atomically.
func (s *Scheduler) Create(ctx context.Context, in CreateInput) (*models.Appointment, error) {
	slot, err := s.validateRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.checkDailyQuota(ctx, slot, ""); err != nil {
		return nil, err
	}
	if err := s.checkSlotFree(ctx, slot, ""); err != nil {
		return nil, err
	}

	appt := models.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      slot.day,
		Hour:      slot.hour,
		Specialty: in.Specialty,
		Reason:    in.Reason,
		Status:    models.StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appt).Error; err != nil {
			return err
		}
		record := models.HistoryRecord{
			AppointmentID:   appt.ID,
			PatientID:       appt.PatientID,
			DoctorID:        appt.DoctorID,
			Specialty:       appt.Specialty,
			Date:            appt.Date,
			Hour:            appt.Hour,
			Status:          appt.Status,
			Reason:          appt.Reason,
			StatusUpdatedAt: s.now(),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, storeError("create appointment", err)
	}
	return &appt, nil
}

// Edit overwrites an appointment's mutable fields after re-running the
// validation chain. The slot-uniqueness check excludes the appointment
// itself, and the daily quota is only re-checked when the calendar day
// changes.
func (s *Scheduler) Edit(ctx context.Context, id string, in CreateInput) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Cita no encontrada"}
		}
		return nil, storeError("load appointment", err)
	}

	slot, err := s.validateRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	if !slot.day.Equal(appt.Date) {
		if err := s.checkDailyQuota(ctx, slot, appt.ID); err != nil {
			return nil, err
		}
	}
	if err := s.checkSlotFree(ctx, slot, appt.ID); err != nil {
		return nil, err
	}

	appt.PatientID = in.PatientID
	appt.DoctorID = in.DoctorID
	appt.Date = slot.day
	appt.Hour = slot.hour
	appt.Specialty = in.Specialty
	appt.Reason = in.Reason

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appt).Error; err != nil {
			return err
		}
		return tx.Model(&models.HistoryRecord{}).
			Where("appointment_id = ?", appt.ID).
			Updates(map[string]interface{}{
				"patient_id":        appt.PatientID,
				"doctor_id":         appt.DoctorID,
				"specialty":         appt.Specialty,
				"date":              appt.Date,
				"hour":              appt.Hour,
				"reason":            appt.Reason,
				"status":            appt.Status,
				"status_updated_at": s.now(),
			}).Error
	})
	if err != nil {
		return nil, storeError("update appointment", err)
	}
	return &appt, nil
}

// UpdateStatus transitions an appointment to status and syncs the
// linked history record.
func (s *Scheduler) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, &ValidationError{Message: "Estado inválido"}
	}

	var appt models.Appointment
	if err := s.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Cita no encontrada"}
		}
		return nil, storeError("load appointment", err)
	}

	appt.Status = status
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appt).Error; err != nil {
			return err
		}
		return tx.Model(&models.HistoryRecord{}).
			Where("appointment_id = ?", appt.ID).
			Updates(map[string]interface{}{
				"status":            status,
				"status_updated_at": s.now(),
			}).Error
	})
	if err != nil {
		return nil, storeError("update appointment status", err)
	}
	return &appt, nil
}

// Cancel releases an appointment's slot by marking it Cancelada. The
// appointment and its history survive for auditing and slot-uniqueness
// checks.
func (s *Scheduler) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	return s.UpdateStatus(ctx, id, models.StatusCancelled)
}

// List returns a page of appointments with their projections, plus the
// total count.
func (s *Scheduler) List(ctx context.Context, page, perPage int) ([]models.Appointment, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, storeError("count appointments", err)
	}

	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("date asc, hour asc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&appts).Error
	if err != nil {
		return nil, 0, storeError("list appointments", err)
	}
	return appts, total, nil
}

// Filters are ANDed equality predicates; zero values are not applied.
// Date narrows to the full local calendar day.
type Filters struct {
	Specialty string
	DoctorID  string
	PatientID string
	Hour      string
	Status    string
	Date      string
}

// ListFiltered returns every appointment matching the provided filters,
// enriched with patient and doctor projections.
func (s *Scheduler) ListFiltered(ctx context.Context, f Filters) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Preload("Patient").Preload("Doctor")

	if f.Specialty != "" {
		q = q.Where("specialty = ?", f.Specialty)
	}
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.Hour != "" {
		q = q.Where("hour = ?", f.Hour)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		day, err := time.ParseInLocation(dateLayout, f.Date, s.loc)
		if err != nil {
			return nil, &ValidationError{Message: "Formato de fecha inválido, se espera AAAA-MM-DD"}
		}
		q = q.Where("date = ?", day)
	}

	var appts []models.Appointment
	if err := q.Find(&appts).Error; err != nil {
		return nil, storeError("filter appointments", err)
	}
	return appts, nil
}

// ListForDoctor returns a doctor's appointments, optionally narrowed to
// the given statuses, with the patient projection resolved.
func (s *Scheduler) ListForDoctor(ctx context.Context, doctorID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	if _, err := uuid.Parse(doctorID); err != nil {
		return nil, &ValidationError{Message: "ID de médico inválido"}
	}

	q := s.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date asc, hour asc")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var appts []models.Appointment
	if err := q.Find(&appts).Error; err != nil {
		return nil, storeError("list doctor appointments", err)
	}
	return appts, nil
}

// ListForPatient returns a patient's appointments with the doctor
// projection resolved.
func (s *Scheduler) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if _, err := uuid.Parse(patientID); err != nil {
		return nil, &ValidationError{Message: "ID de usuario inválido"}
	}

	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date asc, hour asc").
		Find(&appts).Error
	if err != nil {
		return nil, storeError("list patient appointments", err)
	}
	return appts, nil
}

// validateRequest runs the ordered checks that do not depend on other
// appointments: required fields, identifier shape, future instant,
// doctor existence, working day and working hours.
func (s *Scheduler) validateRequest(ctx context.Context, in CreateInput) (*slotRequest, error) {
	var missing []string
	if in.DoctorID == "" {
		missing = append(missing, "medico")
	}
	if in.Date == "" {
		missing = append(missing, "fecha")
	}
	if in.Hour == "" {
		missing = append(missing, "hora")
	}
	if in.PatientID == "" {
		missing = append(missing, "paciente")
	}
	if in.Specialty == "" {
		missing = append(missing, "especialidad")
	}
	if len(missing) > 0 {
		return nil, validationErrorf("Campos requeridos faltantes: %s", strings.Join(missing, ", "))
	}

	if _, err := uuid.Parse(in.DoctorID); err != nil {
		return nil, &ValidationError{Message: "ID de médico inválido"}
	}
	if _, err := uuid.Parse(in.PatientID); err != nil {
		return nil, &ValidationError{Message: "ID de paciente inválido"}
	}

	day, err := time.ParseInLocation(dateLayout, in.Date, s.loc)
	if err != nil {
		return nil, &ValidationError{Message: "Formato de fecha inválido, se espera AAAA-MM-DD"}
	}
	clock, err := time.Parse(hourLayout, in.Hour)
	if err != nil {
		return nil, &ValidationError{Message: "Formato de hora inválido, se espera HH:MM"}
	}
	hour := clock.Format(hourLayout)

	instant := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc)
	if !instant.After(s.now()) {
		return nil, &ValidationError{Message: "No se pueden agendar citas en fechas pasadas"}
	}

	var doctor models.Doctor
	if err := s.db.WithContext(ctx).First(&doctor, "id = ?", in.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Médico no encontrado"}
		}
		return nil, storeError("load doctor", err)
	}

	dayName := WeekdayName(instant.Weekday())
	if !normalizedDaySet(doctor.WorkingDays)[NormalizeDay(dayName)] {
		return nil, conflictErrorf("El médico no atiende los días %s", dayName)
	}

	start, err := clockMinutes(doctor.WorkingHours.Start)
	if err != nil {
		return nil, storeError("parse doctor working hours", err)
	}
	end, err := clockMinutes(doctor.WorkingHours.End)
	if err != nil {
		return nil, storeError("parse doctor working hours", err)
	}
	requested := clock.Hour()*60 + clock.Minute()
	if requested < start || requested >= end {
		return nil, conflictErrorf("Hora fuera del horario del médico (%s - %s)",
			doctor.WorkingHours.Start, doctor.WorkingHours.End)
	}

	return &slotRequest{day: day, hour: hour, doctor: doctor}, nil
}

// checkDailyQuota rejects when the doctor's calendar day already holds
// its full capacity. Appointments of any status count toward the quota.
func (s *Scheduler) checkDailyQuota(ctx context.Context, slot *slotRequest, excludeID string) error {
	limit := slot.doctor.DailyLimit
	if limit <= 0 {
		limit = defaultDailyLimit
	}

	q := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", slot.doctor.ID, slot.day)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return storeError("count day appointments", err)
	}
	if count >= int64(limit) {
		return &ConflictError{Message: "No hay disponibilidad para ese día"}
	}
	return nil
}

// checkSlotFree rejects when another non-cancelled appointment already
// occupies the exact (doctor, day, hour) slot.
func (s *Scheduler) checkSlotFree(ctx context.Context, slot *slotRequest, excludeID string) error {
	q := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND hour = ? AND status <> ?",
			slot.doctor.ID, slot.day, slot.hour, models.StatusCancelled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return storeError("check slot", err)
	}
	if count > 0 {
		return &ConflictError{Message: "Ya existe una cita agendada para esa hora"}
	}
	return nil
}

// clockMinutes converts an "HH:MM" string to minutes since midnight.
func clockMinutes(hhmm string) (int, error) {
	t, err := time.Parse(hourLayout, strings.TrimSpace(hhmm))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
