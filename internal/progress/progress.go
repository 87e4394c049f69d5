// Package progress reports simulation progress through the logger
// without flooding it: iteration lines are rate-limited on the wall
// clock. The clock is a quartz.Clock so tests can drive time.
package progress

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const defaultMinInterval = time.Second

// Reporter is plugged into the simulator's progress hook. It is safe
// for concurrent use by worker goroutines.
type Reporter struct {
	logger *log.Logger
	clock  quartz.Clock

	mu       sync.Mutex
	interval time.Duration
	started  time.Time
	lastLog  time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock replaces the wall clock, for tests.
func WithClock(clock quartz.Clock) Option {
	return func(r *Reporter) {
		r.clock = clock
	}
}

// WithMinInterval sets the minimum time between iteration lines.
func WithMinInterval(d time.Duration) Option {
	return func(r *Reporter) {
		r.interval = d
	}
}

// NewReporter creates a reporter logging through the given logger.
func NewReporter(logger *log.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		logger:   logger.WithPrefix("sim"),
		clock:    quartz.NewReal(),
		interval: defaultMinInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.started = r.clock.Now()
	return r
}

// Update is the hook handed to the simulator. It logs an iteration
// line at most once per interval and always logs completion with the
// achieved trial rate.
func (r *Reporter) Update(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if done >= total {
		elapsed := now.Sub(r.started)
		r.logger.Info("simulation complete",
			"trials", total,
			"elapsed", elapsed.Truncate(time.Millisecond),
			"trials/s", rate(total, elapsed))
		return
	}

	if now.Sub(r.lastLog) < r.interval {
		return
	}
	r.lastLog = now
	r.logger.Info("running", "done", done, "total", total,
		"pct", int(float64(done)/float64(total)*100))
}

func rate(trials int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(float64(trials) / elapsed.Seconds())
}
