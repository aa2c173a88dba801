package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/timer"
	"go.uber.org/zap"
)

// Journal pruning runs once a day at this local time, away from the evening
// reminders.
const (
	pruneHour   = 4
	pruneMinute = 0
)

// Scheduler prunes delivery journal rows older than the retention window.
type Scheduler struct {
	dm        contract.DataManager
	retention time.Duration
	log       *zap.Logger
	timer     *timer.Daily
}

func New(dm contract.DataManager, retention time.Duration, log *zap.Logger, opts ...timer.Option) (*Scheduler, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}

	s := &Scheduler{
		dm:        dm,
		retention: retention,
		log:       log,
	}

	opts = append(opts, timer.WithName("journal-prune"), timer.WithLogger(log))
	t, err := timer.New(pruneHour, pruneMinute, s.Prune, opts...)
	if err != nil {
		return nil, err
	}
	s.timer = t

	return s, nil
}

func (s *Scheduler) Start() {
	s.log.Info("journal pruning scheduled", zap.Duration("retention", s.retention))
	s.timer.Start()
}

func (s *Scheduler) Stop() {
	s.timer.Dispose()
}

// Prune deletes every delivery scheduled before at minus the retention window.
func (s *Scheduler) Prune(ctx context.Context, at time.Time) error {
	cutoff := at.Add(-s.retention)

	var n int64
	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		var err error
		n, err = tx.Delivery().DeleteBefore(ctx, cutoff)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to prune deliveries before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if n > 0 {
		s.log.Info("delivery journal pruned", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
	return nil
}
