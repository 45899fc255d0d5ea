package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"clinica-backend/internal/models"
)

// SweepResult reports how many appointments each transition touched.
type SweepResult struct {
	ExpiredPending   int64 `json:"pendientesCanceladas"`
	ExpiredConfirmed int64 `json:"confirmadasNoAtendidas"`
}

// ReconcileExpired resolves stale appointments: Pendiente ones whose day
// has passed become Cancelada, Confirmada ones become No atendida, and
// each linked history record's status follows. Re-running the sweep on
// the same data is a no-op.
func (s *Scheduler) ReconcileExpired(ctx context.Context) (SweepResult, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	var res SweepResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res.ExpiredPending, err = s.transitionExpired(tx, today, models.StatusPending, models.StatusCancelled)
		if err != nil {
			return err
		}
		res.ExpiredConfirmed, err = s.transitionExpired(tx, today, models.StatusConfirmed, models.StatusNotAttended)
		return err
	})
	if err != nil {
		return SweepResult{}, storeError("reconcile expired appointments", err)
	}
	return res, nil
}

// transitionExpired bulk-moves every appointment in status from with a
// date strictly before today to status to, syncing history through the
// appointment back-reference.
func (s *Scheduler) transitionExpired(tx *gorm.DB, today time.Time, from, to models.AppointmentStatus) (int64, error) {
	var ids []string
	err := tx.Model(&models.Appointment{}).
		Where("status = ? AND date < ?", from, today).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := tx.Model(&models.Appointment{}).
		Where("id IN ?", ids).
		Update("status", to).Error; err != nil {
		return 0, err
	}
	err = tx.Model(&models.HistoryRecord{}).
		Where("appointment_id IN ?", ids).
		Updates(map[string]interface{}{
			"status":            to,
			"status_updated_at": s.now(),
		}).Error
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
