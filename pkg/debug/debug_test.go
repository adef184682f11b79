package debug

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/sirupsen/logrus"
)

type slowSource struct {
	delay time.Duration
	err   error
}

func (s slowSource) Name() string { return "slow" }

func (s slowSource) Snapshot(context.Context) (netdev.Snapshot, error) {
	time.Sleep(s.delay)
	return netdev.Snapshot{"eth0": {RxBytes: 1}}, s.err
}

func TestTimedSource(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ts := NewTimedSource(slowSource{delay: 2 * time.Millisecond}, logger)
	for i := 0; i < 3; i++ {
		if _, err := ts.Snapshot(context.Background()); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
	}

	timing := ts.Timing()
	if ts.Name() != "slow" || timing.Name != "slow" {
		t.Fatalf("unexpected name %q / %q", ts.Name(), timing.Name)
	}
	if timing.Samples != 3 {
		t.Fatalf("Samples = %d", timing.Samples)
	}
	if timing.Max < 2*time.Millisecond || timing.Mean() < 2*time.Millisecond {
		t.Fatalf("durations too small: %+v", timing)
	}
}

func TestTimedSourcePassesErrors(t *testing.T) {
	boom := errors.New("boom")
	ts := NewTimedSource(slowSource{err: boom}, nil)
	if _, err := ts.Snapshot(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ts.Timing().Samples != 1 {
		t.Fatal("failed samples should still be timed")
	}
}

func TestDumpSnapshot(t *testing.T) {
	var buf bytes.Buffer
	DumpSnapshot(&buf, "procfs", netdev.Snapshot{
		"wlan0": {RxBytes: 2048, TxBytes: 0},
		"eth0":  {RxBytes: 1, TxBytes: 3 * 1024 * 1024},
	})

	out := buf.String()
	if !strings.Contains(out, "Raw Counters (procfs)") {
		t.Fatalf("missing title:\n%s", out)
	}
	eth := strings.Index(out, "eth0")
	wlan := strings.Index(out, "wlan0")
	if eth < 0 || wlan < 0 || eth > wlan {
		t.Fatalf("interfaces missing or unsorted:\n%s", out)
	}
	for _, want := range []string{"2048", "2.0 KiB", "3145728", "3.0 MiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestSourceTimingMeanEmpty(t *testing.T) {
	if (SourceTiming{}).Mean() != 0 {
		t.Fatal("mean of no samples should be zero")
	}
}
