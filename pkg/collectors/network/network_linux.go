//go:build linux

package network

import (
	"context"
	"fmt"
	"os"

	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/sirupsen/logrus"
)

const defaultSource = SourceProcFS

// ProcNetDev is the kernel's per-interface counter table.
const ProcNetDev = "/proc/net/dev"

// ProcFS reads interface counters from /proc/net/dev.
type ProcFS struct {
	Path   string
	parser *netdev.Parser
	logger logrus.FieldLogger
}

// NewProcFS creates a source reading path, or /proc/net/dev when path is empty.
func NewProcFS(path string, logger logrus.FieldLogger) *ProcFS {
	if path == "" {
		path = ProcNetDev
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &ProcFS{
		Path:   path,
		parser: netdev.NewParser(logger.WithField("source", SourceProcFS)),
		logger: logger,
	}
}

// Name returns the source name.
func (p *ProcFS) Name() string {
	return SourceProcFS
}

// Snapshot reads and parses the counter file.
func (p *ProcFS) Snapshot(ctx context.Context) (netdev.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(p.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	snap, err := p.parser.ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}

	logSnapshot(p.logger, SourceProcFS, snap)
	return snap, nil
}

func platformSources(logger logrus.FieldLogger) []collectors.Source {
	return []collectors.Source{NewProcFS("", logger)}
}
