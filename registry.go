//////////////////////////////////////////////////////////////////////////////
//
// Registry of surfaces, keyed by channel name
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
)

// A Registry hands out surfaces by channel name. A surface is created the
// first time its name is acquired and destroyed when the last reference is
// released. Endpoints that should rendezvous must share a Registry.
//
// Lock order is registry, then surface. Surface methods never take the
// registry mutex.
type Registry struct {
	mutex    sync.Mutex
	surfaces map[string]*Surface
}

// DefaultRegistry is the process-wide registry used by endpoints whose
// Config does not name one.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[string]*Surface),
	}
}

// Acquire returns the surface for name, creating it if necessary. Every
// call must be matched by exactly one Release.
func (r *Registry) Acquire(name string) *Surface {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if s, found := r.surfaces[name]; found {
		s.refs++
		return s
	}

	s := newSurface(name)
	s.refs = 1
	r.surfaces[name] = s
	return s
}

// Release drops one reference to s. When no references remain the surface
// is removed from the registry and its queued buffers are released. s must
// not be used by the caller afterwards.
func (r *Registry) Release(s *Surface) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if s.refs <= 0 {
		panic("localsurface: surface " + s.name + " released more times than acquired")
	}

	s.refs--
	if s.refs > 0 {
		return
	}

	// A later Acquire of the same name creates a fresh surface.
	if r.surfaces[s.name] == s {
		delete(r.surfaces, s.name)
	}
	s.teardown()
}

// Lookup returns the live surface for name without taking a reference. The
// result is only good for inspection.
func (r *Registry) Lookup(name string) (*Surface, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	s, found := r.surfaces[name]
	return s, found
}

// Names returns the channel names of all live surfaces, sorted.
func (r *Registry) Names() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	names := make([]string, 0, len(r.surfaces))
	for name := range r.surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns a snapshot of every live surface, sorted by name.
func (r *Registry) Stats() []Stats {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stats := make([]Stats, 0, len(r.surfaces))
	for _, s := range r.surfaces {
		st := s.stats()
		st.Refs = s.refs
		stats = append(stats, st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Close tears down every surface, whether or not it is still referenced.
// The returned error lists surfaces that still had references. Those holders
// may still Release them, but every other operation sees a released surface.
func (r *Registry) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var err error
	for name, s := range r.surfaces {
		if s.refs > 0 {
			err = multierr.Append(err, fmt.Errorf("surface %q still has %d references", name, s.refs))
		}
		s.teardown()
		delete(r.surfaces, name)
	}
	return err
}
