// Package sampler drives the periodic collect-and-render loop.
package sampler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/danpilch/ifstat/pkg/output"
	"github.com/sirupsen/logrus"
)

// DefaultMaxFailures is the number of consecutive failed samples tolerated.
const DefaultMaxFailures = 3

// Sampler renders one row per tick from successive snapshots of a Source.
type Sampler struct {
	Source   collectors.Source
	Reporter *output.Reporter
	Out      io.Writer

	Selection netdev.Selection
	HideZero  bool

	// FirstDelay is the wait before the first row, Delay the wait between rows.
	FirstDelay time.Duration
	Delay      time.Duration
	// Count limits the number of rows. Zero means unlimited.
	Count int
	// MaxFailures consecutive collection errors abort the run.
	MaxFailures int

	// OnSample, if set, is called with every successfully collected snapshot.
	OnSample func(netdev.Snapshot)

	logger logrus.FieldLogger
}

// New creates a sampler writing to out with a one second interval.
func New(source collectors.Source, out io.Writer, logger *logrus.Logger) *Sampler {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Sampler{
		Source:      source,
		Reporter:    output.NewReporter(),
		Out:         out,
		FirstDelay:  time.Second,
		Delay:       time.Second,
		MaxFailures: DefaultMaxFailures,
		logger:      logger.WithField("source", source.Name()),
	}
}

// Run samples until Count rows were written or ctx is cancelled. A failed first
// sample or a write error ends the run with an error; a failed later sample skips
// that tick.
func (s *Sampler) Run(ctx context.Context) error {
	prev, err := s.Source.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("initial sample: %w", err)
	}
	if s.OnSample != nil {
		s.OnSample(prev)
	}

	ifaces := s.Selection.Resolve(prev)
	s.logger.WithField("interfaces", ifaces).Debug("Resolved interfaces")
	if len(netdev.Effective(prev, ifaces, s.HideZero)) == 0 {
		s.logger.Warn("No interfaces to monitor")
	}

	if err := s.Reporter.RenderHeader(s.Out, ifaces, s.HideZero, prev); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}

	maxFailures := s.MaxFailures
	if maxFailures < 1 {
		maxFailures = 1
	}

	delay := s.FirstDelay
	failures := 0
	for rows := 0; s.Count <= 0 || rows < s.Count; {
		if !wait(ctx, delay) {
			return nil
		}
		delay = s.Delay

		cur, err := s.Source.Snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			s.logger.WithFields(logrus.Fields{
				"error":    err,
				"failures": failures,
			}).Warn("Sample failed, skipping tick")
			if failures >= maxFailures {
				return fmt.Errorf("giving up after %d failed samples: %w", failures, err)
			}
			continue
		}
		failures = 0
		if s.OnSample != nil {
			s.OnSample(cur)
		}

		if err := s.Reporter.RenderRow(s.Out, prev, cur, ifaces, s.HideZero); err != nil {
			return fmt.Errorf("cannot write row: %w", err)
		}
		prev = cur
		rows++
	}
	return nil
}

// wait blocks for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
