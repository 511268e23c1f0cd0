package langflash

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"context"
	"go.uber.org/zap"
	"time"
)

// DefaultPollInterval is how often the foreground layout is probed.
const DefaultPollInterval = 25 * time.Millisecond

// Monitor polls a Prober and publishes every change. Its state is only
// touched by the goroutine running Run.
type Monitor struct {
	current  layouts.LayoutCode
	observed bool

	interval  time.Duration
	prober    Prober
	publisher Publisher
	log       *zap.SugaredLogger
}

func NewMonitor(
	prober Prober,
	publisher Publisher,
	interval time.Duration,
	log *zap.SugaredLogger,
) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Monitor{
		interval:  interval,
		prober:    prober,
		publisher: publisher,
		log:       log,
	}
}

// Run publishes the first observation, then polls until ctx is done and
// returns ctx.Err(). Nothing is published after ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.observe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.observe(ctx)
		}
	}
}

func (m *Monitor) observe(ctx context.Context) {
	code := m.prober.Probe()
	if m.observed && code == m.current {
		return
	}

	// the probe can take a while, don't publish into a shutdown
	if ctx.Err() != nil {
		return
	}

	if m.observed {
		m.log.Debugw("layout changed", "from", m.current.String(), "to", code.String())
	} else {
		m.log.Debugw("initial layout", "layout", code.String())
	}

	m.current, m.observed = code, true
	m.publisher.Publish(code)
}
