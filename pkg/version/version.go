// Package version holds build and host metadata for --version output.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X github.com/danpilch/ifstat/pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const (
	Author  = "ifstat contributors"
	License = "MIT"
	Repo    = "https://github.com/danpilch/ifstat"
)

// Info is the version metadata of the running binary.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	Target    string
	Kernel    string
}

// Get returns the metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Target:    runtime.GOOS + "/" + runtime.GOARCH,
		Kernel:    kernel(),
	}
}

// Long renders the multi-line version block.
func (i Info) Long() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ifstat %s\n", i.Version)
	b.WriteString("A tool to report network interface statistics.\n\n")
	fmt.Fprintf(&b, "Author: %s\n", Author)
	fmt.Fprintf(&b, "License: %s\n", License)
	b.WriteString("Build info:\n")
	fmt.Fprintf(&b, "  Commit: %s\n", i.Commit)
	fmt.Fprintf(&b, "  Build Timestamp: %s\n", i.BuildTime)
	fmt.Fprintf(&b, "  Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  Compilation Target: %s\n", i.Target)
	if i.Kernel != "" {
		fmt.Fprintf(&b, "  Kernel: %s\n", i.Kernel)
	}
	fmt.Fprintf(&b, "Repo: %s\n", Repo)
	return b.String()
}
