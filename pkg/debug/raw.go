package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danpilch/ifstat/pkg/netdev"
	"github.com/dustin/go-humanize"
)

var (
	debugTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	debugHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	debugDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// DumpSnapshot writes the raw cumulative counters of snap, sorted by interface.
func DumpSnapshot(w io.Writer, source string, snap netdev.Snapshot) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Raw Counters ("+source+")"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 72)))
	fmt.Fprintf(w, "  %s %s %s\n",
		debugHeader.Render("INTERFACE           "),
		debugHeader.Render("RX BYTES                "),
		debugHeader.Render("TX BYTES                "))
	fmt.Fprintln(w, "  "+debugDim.Render(strings.Repeat("─", 72)))

	for _, name := range snap.Names() {
		c := snap[name]
		fmt.Fprintf(w, "  %-22s %-26s %s\n", name,
			fmt.Sprintf("%d %s", c.RxBytes, debugDim.Render("("+humanize.IBytes(c.RxBytes)+")")),
			fmt.Sprintf("%d %s", c.TxBytes, debugDim.Render("("+humanize.IBytes(c.TxBytes)+")")))
	}
}

// TimingReport prints a styled timing summary for a source.
func TimingReport(w io.Writer, t SourceTiming) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, debugTitle.Render("Source Timing Report"))
	fmt.Fprintln(w, debugDim.Render(strings.Repeat("═", 40)))
	fmt.Fprintf(w, "  %-12s %s\n", "source", t.Name)
	fmt.Fprintf(w, "  %-12s %d\n", "samples", t.Samples)
	fmt.Fprintf(w, "  %-12s %v\n", "mean", t.Mean())
	fmt.Fprintf(w, "  %-12s %v\n", "max", t.Max)
}
