// Package collectors defines the counter sources that feed the sampler.
package collectors

import (
	"context"

	"github.com/danpilch/ifstat/pkg/netdev"
)

// Source produces a fresh counter snapshot on every call.
type Source interface {
	// Name returns the name of the source (e.g., "procfs", "netstat").
	Name() string

	// Snapshot reads the current cumulative counters of every interface.
	Snapshot(ctx context.Context) (netdev.Snapshot, error)
}

// Registry holds the sources available on this platform.
type Registry struct {
	sources []Source
}

// NewRegistry creates a new source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make([]Source, 0),
	}
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	r.sources = append(r.sources, s)
}

// Sources returns all registered sources.
func (r *Registry) Sources() []Source {
	return r.sources
}

// Names returns the names of all registered sources in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// GetByName returns a source by name, or nil if not found.
func (r *Registry) GetByName(name string) Source {
	for _, s := range r.sources {
		if s.Name() == name {
			return s
		}
	}
	return nil
}
