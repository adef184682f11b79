package netdev

import (
	"net"
	"strings"
)

// Selection describes which interfaces to report on.
type Selection struct {
	// Names is an explicit, ordered interface list. When set, All is ignored.
	Names []string
	// All selects every interface found in the snapshot.
	All bool
	// Loopback keeps loopback interfaces when resolving from a snapshot.
	Loopback bool
}

// ParseNames splits a comma separated interface list, dropping empty entries.
func ParseNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Resolve returns the display-ordered interface list for snap.
func (s Selection) Resolve(snap Snapshot) []string {
	if len(s.Names) > 0 {
		seen := make(map[string]bool, len(s.Names))
		names := make([]string, 0, len(s.Names))
		for _, name := range s.Names {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
		return names
	}

	names := make([]string, 0, len(snap))
	for _, name := range snap.Names() {
		if !s.Loopback && IsLoopback(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// lookupFlags is replaced in tests.
var lookupFlags = func(name string) (net.Flags, bool) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return 0, false
	}
	return iface.Flags, true
}

// IsLoopback reports whether name is a loopback interface on this host. Interfaces
// the system does not know about fall back to the lo/lo0 naming convention.
func IsLoopback(name string) bool {
	if flags, ok := lookupFlags(name); ok {
		return flags&net.FlagLoopback != 0
	}
	return name == "lo" || strings.HasPrefix(name, "lo0") || strings.HasPrefix(name, "lo:")
}
