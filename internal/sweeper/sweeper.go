// Package sweeper expires stale quotes on a schedule.
// The quoting core never expires records itself; this is the retention
// collaborator that moves Quoted records past their expiration to
// Expired.
package sweeper

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"quote-engine/core/quote"
	"quote-engine/internal/errors"
	"quote-engine/internal/logging"
)

// Sweeper runs the scheduled expiry sweep
type Sweeper struct {
	cron  *cron.Cron
	store *quote.Store
}

// New creates a sweeper on the given cron schedule (e.g. "@hourly")
func New(store *quote.Store, schedule string) (*Sweeper, error) {
	if store == nil {
		return nil, errors.Config("sweeper requires a quote store")
	}

	s := &Sweeper{
		cron:  cron.New(),
		store: store,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid expiry schedule %q", schedule)
	}
	return s, nil
}

// Start begins the schedule
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep expires stale quotes once; the cron schedule calls this
func (s *Sweeper) Sweep() {
	expired := s.store.MarkExpired(time.Now().UTC())
	if len(expired) > 0 {
		logging.Info("expired stale quotes",
			zap.Int("count", len(expired)),
			zap.Strings("quote_ids", expired))
	}
}
