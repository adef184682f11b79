package network

import (
	"context"
	"fmt"
	"strings"

	"github.com/danpilch/ifstat/pkg/netdev"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/sirupsen/logrus"
)

// Psutil reads interface counters through the platform API wrapped by gopsutil.
// The result is already structured, so the text parser is bypassed.
type Psutil struct {
	logger   logrus.FieldLogger
	counters func(ctx context.Context) ([]psnet.IOCountersStat, error)
}

// NewPsutil creates a gopsutil backed source.
func NewPsutil(logger logrus.FieldLogger) *Psutil {
	if logger == nil {
		logger = discardLogger()
	}
	return &Psutil{
		logger: logger,
		counters: func(ctx context.Context) ([]psnet.IOCountersStat, error) {
			return psnet.IOCountersWithContext(ctx, true)
		},
	}
}

// Name returns the source name.
func (p *Psutil) Name() string {
	return SourcePsutil
}

// Snapshot queries per-interface counters.
func (p *Psutil) Snapshot(ctx context.Context) (netdev.Snapshot, error) {
	stats, err := p.counters(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot query interface counters: %w", err)
	}

	snap := make(netdev.Snapshot, len(stats))
	for _, s := range stats {
		snap[strings.TrimSpace(s.Name)] = netdev.Counters{RxBytes: s.BytesRecv, TxBytes: s.BytesSent}
	}

	logSnapshot(p.logger, SourcePsutil, snap)
	return snap, nil
}
