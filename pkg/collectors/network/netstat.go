package network

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/sirupsen/logrus"
)

// Netstat reads interface counters from `netstat -ibn`.
type Netstat struct {
	logger logrus.FieldLogger
	// run executes netstat and returns its stdout.
	run func(ctx context.Context) ([]byte, error)
}

// NewNetstat creates a netstat backed source.
func NewNetstat(logger logrus.FieldLogger) *Netstat {
	if logger == nil {
		logger = discardLogger()
	}
	return &Netstat{
		logger: logger,
		run: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "netstat", "-ibn").Output()
		},
	}
}

// Name returns the source name.
func (n *Netstat) Name() string {
	return SourceNetstat
}

// Snapshot runs netstat and parses its interface table.
func (n *Netstat) Snapshot(ctx context.Context) (netdev.Snapshot, error) {
	out, err := n.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("netstat -ibn: %w", err)
	}

	snap, err := parseNetstat(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("netstat -ibn: %w", err)
	}

	logSnapshot(n.logger, SourceNetstat, snap)
	return snap, nil
}

// parseNetstat parses the BSD interface table:
//
//	Name  Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
//	en0   1500  <Link#4>      a4:83:e7:00:00:01  83120     0   94561234    40121     0    6543210     0
//
// Only the link-level row of each interface is used; the per-address rows repeat
// the same counters. The Address column may be empty, so counters are indexed from
// the end of the row.
func parseNetstat(r io.Reader) (netdev.Snapshot, error) {
	snap := make(netdev.Snapshot)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)

		// Skip header line
		if lineNum == 1 || len(fields) == 0 {
			continue
		}
		if len(fields) < 10 {
			return nil, &netdev.ParseError{
				Line: lineNum,
				Text: line,
				Err:  netdev.ErrMalformedCounters,
				Msg:  fmt.Sprintf("%d fields, want at least 10", len(fields)),
			}
		}
		if !strings.HasPrefix(fields[2], "<Link#") {
			continue
		}

		name := strings.TrimSuffix(fields[0], "*")
		if _, exists := snap[name]; exists {
			continue
		}

		n := len(fields)
		rx, err := strconv.ParseUint(fields[n-5], 10, 64)
		if err != nil {
			return nil, &netdev.ParseError{Line: lineNum, Text: line, Err: netdev.ErrInvalidNumber, Msg: "Ibytes " + strconv.Quote(fields[n-5])}
		}
		tx, err := strconv.ParseUint(fields[n-2], 10, 64)
		if err != nil {
			return nil, &netdev.ParseError{Line: lineNum, Text: line, Err: netdev.ErrInvalidNumber, Msg: "Obytes " + strconv.Quote(fields[n-2])}
		}

		snap[name] = netdev.Counters{RxBytes: rx, TxBytes: tx}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}
