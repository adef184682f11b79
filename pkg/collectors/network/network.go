// Package network provides the per-platform interface counter sources.
package network

import (
	"io"

	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Source names accepted by the --source flag.
const (
	SourceAuto    = "auto"
	SourceProcFS  = "procfs"
	SourceNetstat = "netstat"
	SourcePsutil  = "psutil"
)

// Register adds every source supported on this platform to r.
func Register(r *collectors.Registry, logger logrus.FieldLogger) {
	if logger == nil {
		logger = discardLogger()
	}
	for _, s := range platformSources(logger) {
		r.Register(s)
	}
	r.Register(NewPsutil(logger))
}

// DefaultSource returns the name of the preferred source on this platform.
func DefaultSource() string {
	return defaultSource
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func logSnapshot(logger logrus.FieldLogger, source string, snap netdev.Snapshot) {
	totals := snap.Totals()
	logger.WithFields(logrus.Fields{
		"source":     source,
		"interfaces": len(snap),
		"rx_total":   humanize.IBytes(totals.RxBytes),
		"tx_total":   humanize.IBytes(totals.TxBytes),
	}).Debug("Collected counters")
}
