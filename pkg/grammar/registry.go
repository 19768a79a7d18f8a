package grammar

import (
	"context"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapverb/pkg/token"
)

// Outcome is a successful resolution: the resolved value and the input
// cursor advanced past everything the resolver consumed.
type Outcome struct {
	Value any
	Next  token.Cursor[string]
}

// Resolver turns a prefix of the input into a value. The cursor is a copy;
// on failure the resolver returns a non-nil error and the outcome is
// ignored, so it may leave its copy anywhere.
type Resolver interface {
	Resolve(ctx context.Context, in token.Cursor[string]) (Outcome, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, in token.Cursor[string]) (Outcome, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, in token.Cursor[string]) (Outcome, error) {
	return f(ctx, in)
}

// Registry maps symbol names to resolvers.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register binds name to r, replacing any earlier binding.
func (r *Registry) Register(name string, res Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[name] = res
}

// Lookup returns the resolver registered under name.
func (r *Registry) Lookup(name string) (Resolver, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resolvers[name]
	return res, ok
}

// Names returns all registered symbol names (sorted).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
