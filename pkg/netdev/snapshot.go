// Package netdev provides the interface counter snapshot model and the parser for
// /proc/net/dev style counter dumps.
package netdev

import "sort"

// Counters holds the cumulative byte counters of one interface.
type Counters struct {
	RxBytes uint64 `json:"rx_bytes"`
	TxBytes uint64 `json:"tx_bytes"`
}

// Active reports whether either counter is nonzero.
func (c Counters) Active() bool {
	return c.RxBytes != 0 || c.TxBytes != 0
}

// Snapshot maps interface names to their counters at one point in time.
// A snapshot must not be modified once it has been handed to a caller.
type Snapshot map[string]Counters

// Names returns the interface names in the snapshot, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Totals sums the counters of all interfaces.
func (s Snapshot) Totals() Counters {
	var t Counters
	for _, c := range s {
		t.RxBytes += c.RxBytes
		t.TxBytes += c.TxBytes
	}
	return t
}

// FilterActive returns the interfaces from ifaces that exist in snap with a nonzero
// counter, keeping their order. Interfaces unknown to snap are dropped.
func FilterActive(snap Snapshot, ifaces []string) []string {
	active := make([]string, 0, len(ifaces))
	for _, name := range ifaces {
		if c, ok := snap[name]; ok && c.Active() {
			active = append(active, name)
		}
	}
	return active
}

// Effective returns the interface list that is actually rendered.
func Effective(snap Snapshot, ifaces []string, hideZero bool) []string {
	if hideZero {
		return FilterActive(snap, ifaces)
	}
	return ifaces
}

// Delta returns cur - prev, or 0 when the counter went backwards.
func Delta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
