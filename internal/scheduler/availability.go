package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinica-backend/internal/models"
)

const defaultSlotMinutes = 60

// DayAvailability lists a doctor's free slot start times for one day.
type DayAvailability struct {
	Date    string   `json:"fecha"`
	Weekday string   `json:"dia"`
	Slots   []string `json:"horarios"`
}

// Availability computes the doctor's free fixed-width slots per day over
// [startDate, endDate]. With no endDate the window runs from today
// through the end of the third following month. Days outside the
// doctor's working days, days already at capacity and days without free
// slots are omitted; cancelled and not-attended appointments do not
// block slots.
func (s *Scheduler) Availability(ctx context.Context, doctorID, startDate, endDate string, slotMinutes int) ([]DayAvailability, error) {
	if _, err := uuid.Parse(doctorID); err != nil {
		return nil, &ValidationError{Message: "ID de médico inválido"}
	}

	var doctor models.Doctor
	if err := s.db.WithContext(ctx).First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Médico no encontrado"}
		}
		return nil, storeError("load doctor", err)
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	start := today
	if startDate != "" {
		d, err := time.ParseInLocation(dateLayout, startDate, s.loc)
		if err != nil {
			return nil, &ValidationError{Message: "Formato de fecha inválido, se espera AAAA-MM-DD"}
		}
		start = d
	}
	end := time.Date(today.Year(), today.Month()+4, 0, 0, 0, 0, 0, s.loc) // last day of the third following month
	if endDate != "" {
		d, err := time.ParseInLocation(dateLayout, endDate, s.loc)
		if err != nil {
			return nil, &ValidationError{Message: "Formato de fecha inválido, se espera AAAA-MM-DD"}
		}
		end = d
	}
	if end.Before(start) {
		return nil, &ValidationError{Message: "Rango de fechas inválido"}
	}

	if slotMinutes <= 0 {
		slotMinutes = defaultSlotMinutes
	}
	limit := doctor.DailyLimit
	if limit <= 0 {
		limit = defaultDailyLimit
	}

	workStart, err := clockMinutes(doctor.WorkingHours.Start)
	if err != nil {
		return nil, storeError("parse doctor working hours", err)
	}
	workEnd, err := clockMinutes(doctor.WorkingHours.End)
	if err != nil {
		return nil, storeError("parse doctor working hours", err)
	}
	workingDays := normalizedDaySet(doctor.WorkingDays)

	// One query for the whole window; blocking statuses only.
	var appts []models.Appointment
	err = s.db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ? AND status NOT IN ?",
			doctorID, start, end,
			[]models.AppointmentStatus{models.StatusCancelled, models.StatusNotAttended}).
		Find(&appts).Error
	if err != nil {
		return nil, storeError("list doctor appointments", err)
	}

	taken := make(map[string]map[string]bool) // day -> occupied hours
	counts := make(map[string]int)
	for _, a := range appts {
		key := a.Date.In(s.loc).Format(dateLayout)
		if taken[key] == nil {
			taken[key] = make(map[string]bool)
		}
		taken[key][a.Hour] = true
		counts[key]++
	}

	var out []DayAvailability
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !workingDays[NormalizeDay(WeekdayName(day.Weekday()))] {
			continue
		}
		key := day.Format(dateLayout)
		if counts[key] >= limit {
			continue
		}

		var slots []string
		for m := workStart; m < workEnd; m += slotMinutes {
			hour := fmt.Sprintf("%02d:%02d", m/60, m%60)
			if taken[key][hour] {
				continue
			}
			slots = append(slots, hour)
		}
		if len(slots) == 0 {
			continue
		}
		out = append(out, DayAvailability{
			Date:    key,
			Weekday: WeekdayName(day.Weekday()),
			Slots:   slots,
		})
	}
	return out, nil
}
