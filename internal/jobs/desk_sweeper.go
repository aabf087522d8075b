package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops desks that have not been seen for longer than maxIdle.
// *decision.Registry implements it.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

// DeskSweeper periodically evicts abandoned desks.
type DeskSweeper struct {
	desks    Sweeper
	interval time.Duration
	maxIdle  time.Duration
	log      *zap.Logger
}

// NewDeskSweeper creates a new desk sweeper.
func NewDeskSweeper(desks Sweeper, interval, maxIdle time.Duration, log *zap.Logger) *DeskSweeper {
	return &DeskSweeper{
		desks:    desks,
		interval: interval,
		maxIdle:  maxIdle,
		log:      log,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *DeskSweeper) Start(ctx context.Context) {
	s.log.Info("desk sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("max_idle", s.maxIdle),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("desk sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *DeskSweeper) sweep() int {
	dropped := s.desks.Sweep(s.maxIdle)
	if dropped > 0 {
		s.log.Debug("swept idle desks",
			zap.Int("dropped", dropped),
			zap.Int("remaining", s.desks.Len()),
		)
	}
	return dropped
}
