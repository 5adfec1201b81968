package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"
)

const minPollInterval = time.Second

// Poller runs refresh jobs on a fixed interval until stopped.
type Poller struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

func NewPoller(logger *slog.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
		log:    logger,
	}
}

// Every schedules fn. Intervals below one second are raised to one second.
func (p *Poller) Every(interval time.Duration, name string, fn func(ctx context.Context) error) error {
	if interval < minPollInterval {
		interval = minPollInterval
	}

	err := p.cron.AddFunc("@every "+interval.String(), func() {
		if p.ctx.Err() != nil {
			return
		}
		if err := fn(p.ctx); err != nil {
			p.log.Warn("poll failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}

	return nil
}

func (p *Poller) Start() {
	p.cron.Start()
}

// Stop halts the schedule and cancels running jobs.
func (p *Poller) Stop() {
	p.cancel()
	p.cron.Stop()
}
