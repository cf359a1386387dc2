// internal/scheduler/accrual.go
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"solvest-backend/internal/service"
)

// AccrualScheduler runs the batch profit recompute on a fixed interval. The
// endpoint that triggers the same sweep stays available for external cron
// setups; this scheduler makes the recurrence self-contained.
type AccrualScheduler struct {
	investments service.InvestmentService
	interval    time.Duration
	logger      *slog.Logger
	stop        chan struct{}
	done        chan struct{}
}

// NewAccrualScheduler creates a scheduler ticking at the given interval.
func NewAccrualScheduler(investments service.InvestmentService, interval time.Duration, logger *slog.Logger) *AccrualScheduler {
	return &AccrualScheduler{
		investments: investments,
		interval:    interval,
		logger:      logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the ticker loop. A failed sweep is logged and the loop
// continues; the next tick retries.
func (s *AccrualScheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("Accrual scheduler started", "interval", s.interval.String())
		for {
			select {
			case <-ticker.C:
				updated, err := s.investments.RecomputeProfits(ctx)
				if err != nil {
					s.logger.Error("Batch profit recompute failed", "error", err)
					continue
				}
				s.logger.Info("Batch profit recompute finished", "updated", updated)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the ticker loop and waits for it to exit.
func (s *AccrualScheduler) Stop() {
	close(s.stop)
	<-s.done
}
