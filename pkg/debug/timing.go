package debug

import (
	"context"
	"sync"
	"time"

	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/sirupsen/logrus"
)

// SourceTiming summarizes how long a source took to produce snapshots.
type SourceTiming struct {
	Name    string
	Samples int
	Last    time.Duration
	Max     time.Duration
	Total   time.Duration
}

// Mean returns the average collection time.
func (t SourceTiming) Mean() time.Duration {
	if t.Samples == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Samples)
}

// TimedSource wraps a collectors.Source to record collection duration.
type TimedSource struct {
	inner  collectors.Source
	logger logrus.FieldLogger

	mu     sync.Mutex
	timing SourceTiming
}

// NewTimedSource wraps a source with timing instrumentation.
func NewTimedSource(s collectors.Source, logger logrus.FieldLogger) *TimedSource {
	return &TimedSource{
		inner:  s,
		logger: logger,
		timing: SourceTiming{Name: s.Name()},
	}
}

// Name returns the wrapped source's name.
func (t *TimedSource) Name() string {
	return t.inner.Name()
}

// Snapshot runs the wrapped source and records duration.
func (t *TimedSource) Snapshot(ctx context.Context) (netdev.Snapshot, error) {
	start := time.Now()
	snap, err := t.inner.Snapshot(ctx)
	elapsed := time.Since(start)

	t.mu.Lock()
	t.timing.Samples++
	t.timing.Last = elapsed
	t.timing.Total += elapsed
	if elapsed > t.timing.Max {
		t.timing.Max = elapsed
	}
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.WithFields(logrus.Fields{
			"source":   t.inner.Name(),
			"duration": elapsed,
		}).Debug("Snapshot collected")
	}
	return snap, err
}

// Timing returns the accumulated timing.
func (t *TimedSource) Timing() SourceTiming {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timing
}
