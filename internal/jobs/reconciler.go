package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"clinica-backend/internal/scheduler"
)

// Reconciler runs the daily appointment status sweep on a cron
// schedule. A failed run is logged and the next one proceeds; the sweep
// itself is idempotent.
type Reconciler struct {
	scheduler *scheduler.Scheduler
	cron      *cron.Cron
}

// NewReconciler creates a Reconciler around the given scheduler.
func NewReconciler(s *scheduler.Scheduler) *Reconciler {
	return &Reconciler{scheduler: s, cron: cron.New()}
}

// Start registers the sweep at the given cron expression and launches
// the schedule.
func (r *Reconciler) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Run executes one sweep.
func (r *Reconciler) Run() {
	res, err := r.scheduler.ReconcileExpired(context.Background())
	if err != nil {
		log.Printf("appointment sweep failed: %v", err)
		return
	}
	if res.ExpiredPending > 0 || res.ExpiredConfirmed > 0 {
		log.Printf("appointment sweep: %d citas pendientes canceladas, %d confirmadas marcadas no atendidas",
			res.ExpiredPending, res.ExpiredConfirmed)
	}
}

// Stop halts the schedule; an in-flight run finishes.
func (r *Reconciler) Stop() {
	r.cron.Stop()
}
