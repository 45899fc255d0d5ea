package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinica-backend/internal/models"
)

// testNow is a Monday morning; March 17 2025 is the following Monday
// and March 15 a Saturday.
var testNow = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestScheduler(t *testing.T) (*Scheduler, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	s := New(db, time.UTC)
	s.now = func() time.Time { return testNow }
	return s, db
}

func seedDoctor(t *testing.T, db *gorm.DB, mut func(*models.Doctor)) models.Doctor {
	t.Helper()
	doctor := models.Doctor{
		Name:         "Dra. Rivera",
		Specialty:    "Cardiología",
		WorkingDays:  datatypes.JSONSlice[string]{"lunes", "martes", "miércoles", "jueves", "viernes"},
		WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
		DailyLimit:   5,
	}
	if mut != nil {
		mut(&doctor)
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB) models.Patient {
	t.Helper()
	patient := models.Patient{
		FullName: "Ana Torres",
		Email:    uuid.NewString() + "@example.com",
		Role:     models.RolePatient,
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

func bookingInput(doctorID, patientID, date, hour string) CreateInput {
	return CreateInput{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		Hour:      hour,
		Specialty: "Cardiología",
		Reason:    "Revisión general",
	}
}

func TestCreate_PersistsPendingWithHistory(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "10:00"))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("expected status %q, got %q", models.StatusPending, appt.Status)
	}
	if appt.Hour != "10:00" {
		t.Fatalf("expected hour 10:00, got %q", appt.Hour)
	}

	var record models.HistoryRecord
	if err := db.First(&record, "appointment_id = ?", appt.ID).Error; err != nil {
		t.Fatalf("expected a history record, got %v", err)
	}
	if record.Status != models.StatusPending {
		t.Fatalf("expected history status %q, got %q", models.StatusPending, record.Status)
	}
	if record.Hour != appt.Hour || record.Specialty != appt.Specialty {
		t.Fatalf("history does not mirror the appointment: %+v", record)
	}
	if !record.Date.Equal(appt.Date) {
		t.Fatalf("expected history date %v, got %v", appt.Date, record.Date)
	}
}

func TestCreate_MissingFieldsAreNamed(t *testing.T) {
	s, _ := newTestScheduler(t)

	_, err := s.Create(context.Background(), CreateInput{
		DoctorID:  uuid.NewString(),
		PatientID: uuid.NewString(),
		Hour:      "10:00",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(validationErr.Message, "Campos requeridos faltantes") {
		t.Fatalf("unexpected message: %q", validationErr.Message)
	}
	if !strings.Contains(validationErr.Message, "fecha") || !strings.Contains(validationErr.Message, "especialidad") {
		t.Fatalf("expected message to name fecha and especialidad, got %q", validationErr.Message)
	}
}

func TestCreate_InvalidIdentifier(t *testing.T) {
	s, _ := newTestScheduler(t)

	_, err := s.Create(context.Background(), bookingInput("not-a-uuid", uuid.NewString(), "2025-03-17", "10:00"))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Message != "ID de médico inválido" {
		t.Fatalf("unexpected message: %q", validationErr.Message)
	}
}

func TestCreate_PastInstantRejected(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	// testNow is Monday 08:00; 07:00 the same day is already gone.
	_, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-10", "07:00"))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(validationErr.Message, "pasadas") {
		t.Fatalf("unexpected message: %q", validationErr.Message)
	}
}

func TestCreate_DoctorNotFound(t *testing.T) {
	s, db := newTestScheduler(t)
	patient := seedPatient(t, db)

	_, err := s.Create(context.Background(), bookingInput(uuid.NewString(), patient.ID, "2025-03-17", "10:00"))
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFoundErr.Message != "Médico no encontrado" {
		t.Fatalf("unexpected message: %q", notFoundErr.Message)
	}
}

func TestCreate_NonWorkingDayNamesWeekday(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	// 2025-03-15 is a Saturday; the doctor works lunes..viernes.
	_, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-15", "10:00"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(conflictErr.Message, "sábado") {
		t.Fatalf("expected message to name sábado, got %q", conflictErr.Message)
	}
}

func TestCreate_OutsideWorkingHours(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil) // 09:00 - 17:00
	patient := seedPatient(t, db)

	_, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "08:30"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(conflictErr.Message, "09:00 - 17:00") {
		t.Fatalf("expected message to name the window, got %q", conflictErr.Message)
	}

	// The end of the window is exclusive.
	_, err = s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "17:00"))
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError at the window end, got %v", err)
	}
}

func TestCreate_DayFullyBooked(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, func(d *models.Doctor) { d.DailyLimit = 2 })
	patient := seedPatient(t, db)

	for _, hour := range []string{"09:00", "10:00"} {
		if _, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", hour)); err != nil {
			t.Fatalf("seed booking at %s: %v", hour, err)
		}
	}

	_, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "11:00"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Message != "No hay disponibilidad para ese día" {
		t.Fatalf("unexpected message: %q", conflictErr.Message)
	}
}

func TestCreate_SlotTakenAndReleasedByCancel(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	first := seedPatient(t, db)
	second := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, first.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err = s.Create(context.Background(), bookingInput(doctor.ID, second.ID, "2025-03-17", "09:00"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Message != "Ya existe una cita agendada para esa hora" {
		t.Fatalf("unexpected message: %q", conflictErr.Message)
	}

	if _, err := s.Cancel(context.Background(), appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := s.Create(context.Background(), bookingInput(doctor.ID, second.ID, "2025-03-17", "09:00")); err != nil {
		t.Fatalf("expected the cancelled slot to be free again, got %v", err)
	}
}

func TestEdit_ExcludesItselfFromSlotCheck(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00")
	in.Reason = "Control mensual"
	updated, err := s.Edit(context.Background(), appt.ID, in)
	if err != nil {
		t.Fatalf("editing onto its own slot must not conflict, got %v", err)
	}
	if updated.Reason != "Control mensual" {
		t.Fatalf("expected reason update, got %q", updated.Reason)
	}
}

func TestEdit_SlotTakenByAnother(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	if _, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "10:00"))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err = s.Edit(context.Background(), second.ID, bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestEdit_RechecksQuotaWhenDayChanges(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, func(d *models.Doctor) { d.DailyLimit = 1 })
	patient := seedPatient(t, db)

	monday, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("monday booking: %v", err)
	}
	tuesday, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-18", "09:00"))
	if err != nil {
		t.Fatalf("tuesday booking: %v", err)
	}

	// Moving the Tuesday appointment onto the already-full Monday must
	// hit the capacity check.
	_, err = s.Edit(context.Background(), tuesday.ID, bookingInput(doctor.ID, patient.ID, "2025-03-17", "10:00"))
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflictErr.Message != "No hay disponibilidad para ese día" {
		t.Fatalf("unexpected message: %q", conflictErr.Message)
	}

	// Moving within the same day never re-checks capacity: the count
	// is unchanged.
	if _, err := s.Edit(context.Background(), monday.ID, bookingInput(doctor.ID, patient.ID, "2025-03-17", "11:00")); err != nil {
		t.Fatalf("same-day move should succeed, got %v", err)
	}
}

func TestEdit_NotFound(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	_, err := s.Edit(context.Background(), uuid.NewString(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestEdit_RefreshesHistory(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Edit(context.Background(), appt.ID, bookingInput(doctor.ID, patient.ID, "2025-03-18", "11:00")); err != nil {
		t.Fatalf("edit: %v", err)
	}

	var record models.HistoryRecord
	if err := db.First(&record, "appointment_id = ?", appt.ID).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if record.Hour != "11:00" {
		t.Fatalf("expected history hour 11:00, got %q", record.Hour)
	}
	if !record.StatusUpdatedAt.Equal(testNow) {
		t.Fatalf("expected refresh timestamp %v, got %v", testNow, record.StatusUpdatedAt)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	s, _ := newTestScheduler(t)

	_, err := s.UpdateStatus(context.Background(), uuid.NewString(), "Aplazada")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Message != "Estado inválido" {
		t.Fatalf("unexpected message: %q", validationErr.Message)
	}
}

func TestUpdateStatus_SyncsHistory(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateStatus(context.Background(), appt.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", models.StatusConfirmed, updated.Status)
	}

	var record models.HistoryRecord
	if err := db.First(&record, "appointment_id = ?", appt.ID).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if record.Status != models.StatusConfirmed {
		t.Fatalf("expected history status %q, got %q", models.StatusConfirmed, record.Status)
	}
}

func TestCancel_KeepsAppointmentAndHistory(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	appt, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Cancel(context.Background(), appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var stored models.Appointment
	if err := db.First(&stored, "id = ?", appt.ID).Error; err != nil {
		t.Fatalf("cancelled appointment must survive, got %v", err)
	}
	if stored.Status != models.StatusCancelled {
		t.Fatalf("expected status %q, got %q", models.StatusCancelled, stored.Status)
	}

	var count int64
	if err := db.Model(&models.HistoryRecord{}).Where("appointment_id = ?", appt.ID).Count(&count).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the history record to survive, found %d", count)
	}
}

func TestListFiltered_AppliesEqualityFilters(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	other := seedDoctor(t, db, func(d *models.Doctor) { d.Name = "Dr. Soto"; d.Specialty = "Pediatría" })
	patient := seedPatient(t, db)

	if _, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00")); err != nil {
		t.Fatalf("create: %v", err)
	}
	in := bookingInput(other.ID, patient.ID, "2025-03-17", "09:00")
	in.Specialty = "Pediatría"
	if _, err := s.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.ListFiltered(context.Background(), Filters{DoctorID: doctor.ID, Date: "2025-03-17"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(got))
	}
	if got[0].DoctorID != doctor.ID {
		t.Fatalf("filter leaked another doctor's appointment: %+v", got[0])
	}
	if got[0].Patient == nil || got[0].Patient.FullName == "" {
		t.Fatalf("expected the patient projection to be resolved")
	}
}

func TestListForDoctor_NarrowsByStatus(t *testing.T) {
	s, db := newTestScheduler(t)
	doctor := seedDoctor(t, db, nil)
	patient := seedPatient(t, db)

	pending, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "09:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	confirmed, err := s.Create(context.Background(), bookingInput(doctor.ID, patient.ID, "2025-03-17", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.UpdateStatus(context.Background(), confirmed.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	got, err := s.ListForDoctor(context.Background(), doctor.ID, models.StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("expected only the pending appointment, got %+v", got)
	}
}
