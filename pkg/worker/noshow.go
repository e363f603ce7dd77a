// Package worker hosts the background jobs that keep the slot history
// honest.
package worker

import (
	"context"
	"time"

	"github.com/medagenda/clinic-api/pkg/logger"
)

// Sweeper marks the still-booked slots of a past date as no-show.
type Sweeper interface {
	SweepNoShows(ctx context.Context, date time.Time) (int64, error)
}

// NoShowWorker periodically sweeps yesterday's unresolved bookings.
// Receptionists mark attendance during the day; whatever is still
// booked after the day ends counts as a no-show.
type NoShowWorker struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *logger.Logger
}

func NewNoShowWorker(sweeper Sweeper, interval time.Duration, log *logger.Logger) *NoShowWorker {
	return &NoShowWorker{sweeper: sweeper, interval: interval, logger: log}
}

func (w *NoShowWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *NoShowWorker) sweep(ctx context.Context) {
	yesterday := time.Now().AddDate(0, 0, -1)
	count, err := w.sweeper.SweepNoShows(ctx, yesterday)
	if err != nil {
		w.logger.Error(err, "no-show sweep failed")
		return
	}
	w.logger.Info("no-show sweep finished", "marked", count)
}
