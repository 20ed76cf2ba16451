// Package server keeps the authoritative set of live connections and their
// display names in the Registry type.
package server

import (
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Assignment is the outcome of Registry.AssignName.
type Assignment struct {
	// Existing is the name already held by the connection, if any.
	Existing string
	// Named reports whether the connection already had a name; when true
	// nothing was stored.
	Named bool
	// Online is the size of the name mapping right after the call.
	Online int
}

// Member describes a named connection.
type Member struct {
	ID         string
	Name       string
	RemoteAddr string
	Since      time.Time
}

// Registry tracks every open connection and the partial mapping from
// connection to display name. All access goes through a single mutex.
type Registry struct {
	mu      sync.Mutex
	open    map[Conn]time.Time
	names   map[Conn]string
	observe func(open, named int)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCountObserver calls fn with the new sizes after every change. fn runs
// with the registry lock held, so successive calls are ordered and must not
// call back into the registry.
func WithCountObserver(fn func(open, named int)) RegistryOption {
	return func(r *Registry) { r.observe = fn }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		open:  make(map[Conn]time.Time),
		names: make(map[Conn]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// changed must be called with mu held.
func (r *Registry) changed() {
	if r.observe != nil {
		r.observe(len(r.open), len(r.names))
	}
}

// Open adds c to the open set and returns the number of open connections.
func (r *Registry) Open(c Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.open[c] = time.Now()
	r.changed()
	return len(r.open)
}

// AssignName stores name for c unless c already has one. The online count is
// taken under the same lock as the insert, so it includes c.
func (r *Registry) AssignName(c Conn, name string) (Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.open[c]; !ok {
		return Assignment{Online: len(r.names)}, ErrUnknownConn
	}
	if existing, ok := r.names[c]; ok {
		return Assignment{Existing: existing, Named: true, Online: len(r.names)}, nil
	}

	r.names[c] = name
	r.changed()
	return Assignment{Online: len(r.names)}, nil
}

// Remove drops c from both collections and returns its name if it had one.
func (r *Registry) Remove(c Conn) (name string, named bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, named = r.names[c]
	_, wasOpen := r.open[c]
	delete(r.names, c)
	delete(r.open, c)
	if wasOpen {
		r.changed()
	}
	return name, named
}

// Recipients returns a copy of the open set, named or not, without exclude.
// A nil exclude selects every open connection.
func (r *Registry) Recipients(exclude Conn) []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipients := lo.Keys(r.open)
	if exclude == nil {
		return recipients
	}
	return lo.Without(recipients, exclude)
}

// Counts returns the number of open and named connections.
func (r *Registry) Counts() (open, named int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.open), len(r.names)
}

// Members returns the named connections ordered by connect time.
func (r *Registry) Members() []Member {
	r.mu.Lock()
	members := lo.MapToSlice(r.names, func(c Conn, name string) Member {
		return Member{ID: c.ID(), Name: name, RemoteAddr: c.RemoteAddr(), Since: r.open[c]}
	})
	r.mu.Unlock()

	sort.Slice(members, func(i, j int) bool {
		return members[i].Since.Before(members[j].Since)
	})
	return members
}
