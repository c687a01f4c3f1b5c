package rentalsvc

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically flips overdue OPEN rentals to LATE. This feeds the
// overdue report between explicit status changes.
type Sweeper struct {
	svc      Service
	interval time.Duration
	log      *slog.Logger
}

func NewSweeper(svc Service, interval time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, interval: interval, log: log}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.svc.MarkLateSweep(ctx)
			if err != nil {
				s.log.Error("late sweep failed", "err", err)
				continue
			}
			if n > 0 {
				s.log.Info("late sweep", "marked_late", n)
			}
		}
	}
}
