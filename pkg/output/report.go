// Package output renders interface throughput as fixed-width text columns.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danpilch/ifstat/pkg/netdev"
)

const (
	// valueWidth is the width of a single rate column.
	valueWidth = 8
	// ifaceWidth spans the in and out columns of one interface.
	ifaceWidth = 2*valueWidth + len(valueSep)

	valueSep = "  "
	ifaceSep = "  "

	labelIn  = "KB/s in"
	labelOut = "KB/s out"
)

// Reporter writes header and rate rows for a list of interfaces.
type Reporter struct {
	// HeaderStyle is applied to each header line. The zero value leaves lines untouched.
	HeaderStyle lipgloss.Style
}

// NewReporter creates a reporter with plain headers.
func NewReporter() *Reporter {
	return &Reporter{HeaderStyle: lipgloss.NewStyle()}
}

// RenderHeader writes the header lines with a plain Reporter.
func RenderHeader(w io.Writer, ifaces []string, hideZero bool, cur netdev.Snapshot) error {
	return NewReporter().RenderHeader(w, ifaces, hideZero, cur)
}

// RenderRow writes one rate row with a plain Reporter.
func RenderRow(w io.Writer, prev, cur netdev.Snapshot, ifaces []string, hideZero bool) error {
	return NewReporter().RenderRow(w, prev, cur, ifaces, hideZero)
}

// RenderHeader writes the two header lines for ifaces: centered interface names, then
// the in/out labels. Nothing is written when no interface is left to show.
func (r *Reporter) RenderHeader(w io.Writer, ifaces []string, hideZero bool, cur netdev.Snapshot) error {
	ifaces = netdev.Effective(cur, ifaces, hideZero)
	if len(ifaces) == 0 {
		return nil
	}

	names := make([]string, len(ifaces))
	labels := make([]string, len(ifaces))
	for i, name := range ifaces {
		names[i] = lipgloss.PlaceHorizontal(ifaceWidth, lipgloss.Center, name)
		labels[i] = fmt.Sprintf("%*s%s%*s", valueWidth, labelIn, valueSep, valueWidth, labelOut)
	}

	var buf bytes.Buffer
	buf.WriteString(r.style(strings.Join(names, ifaceSep)))
	buf.WriteByte('\n')
	buf.WriteString(r.style(strings.Join(labels, ifaceSep)))
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderRow writes the KB transferred between prev and cur for every interface in
// ifaces. Interfaces missing from either snapshot produce no columns.
func (r *Reporter) RenderRow(w io.Writer, prev, cur netdev.Snapshot, ifaces []string, hideZero bool) error {
	ifaces = netdev.Effective(cur, ifaces, hideZero)

	cols := make([]string, 0, len(ifaces))
	for _, name := range ifaces {
		rate, ok := Rate(prev, cur, name)
		if !ok {
			continue
		}
		cols = append(cols, fmt.Sprintf("%*.2f%s%*.2f", valueWidth, rate.RxKBps, valueSep, valueWidth, rate.TxKBps))
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(cols, ifaceSep))
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Reporter) style(line string) string {
	return r.HeaderStyle.Render(line)
}

// RateSample is the throughput of one interface between two snapshots.
type RateSample struct {
	RxKBps float64
	TxKBps float64
}

// Rate computes the rate sample for name. It returns false when name is absent from
// either snapshot. Counters that went backwards count as no traffic.
func Rate(prev, cur netdev.Snapshot, name string) (RateSample, bool) {
	p, ok := prev[name]
	if !ok {
		return RateSample{}, false
	}
	c, ok := cur[name]
	if !ok {
		return RateSample{}, false
	}
	return RateSample{
		RxKBps: float64(netdev.Delta(p.RxBytes, c.RxBytes)) / 1024.0,
		TxKBps: float64(netdev.Delta(p.TxBytes, c.TxBytes)) / 1024.0,
	}, true
}
