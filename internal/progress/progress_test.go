package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func newTestReporter(t *testing.T, interval time.Duration) (*Reporter, *quartz.Mock, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	clock := quartz.NewMock(t)
	r := NewReporter(log.New(&buf), WithClock(clock), WithMinInterval(interval))
	return r, clock, &buf
}

func TestReporterThrottlesIterationLines(t *testing.T) {
	r, clock, buf := newTestReporter(t, time.Second)

	r.Update(1000, 10000)
	assert.Equal(t, 1, strings.Count(buf.String(), "running"))

	// Within the interval nothing further is logged.
	clock.Advance(100 * time.Millisecond)
	r.Update(2000, 10000)
	r.Update(3000, 10000)
	assert.Equal(t, 1, strings.Count(buf.String(), "running"))

	clock.Advance(time.Second)
	r.Update(4000, 10000)
	assert.Equal(t, 2, strings.Count(buf.String(), "running"))
}

func TestReporterAlwaysLogsCompletion(t *testing.T) {
	r, clock, buf := newTestReporter(t, time.Second)

	r.Update(5000, 10000)
	clock.Advance(10 * time.Millisecond)
	r.Update(10000, 10000)

	out := buf.String()
	assert.Contains(t, out, "simulation complete")
	assert.Contains(t, out, "trials=10000")
}

func TestReporterCompletionRate(t *testing.T) {
	r, clock, buf := newTestReporter(t, time.Second)

	clock.Advance(2 * time.Second)
	r.Update(100000, 100000)

	assert.Contains(t, buf.String(), "trials/s=50000")
}
