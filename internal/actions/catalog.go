// Package actions provides the named action catalog grammars bind to and
// the built-in adventure actions.
package actions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
)

// Catalog maps action names to actions.
type Catalog struct {
	mu      sync.RWMutex
	byName  map[string]grammar.Action
	sources map[string]string // name -> where it was defined
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName:  make(map[string]grammar.Action),
		sources: make(map[string]string),
	}
}

// Register adds an action under its own name. source describes where the
// action came from ("builtin", a script path) and is shown by `verbs`.
// Registering a name twice is an error.
func (c *Catalog) Register(a grammar.Action, source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := a.Name()
	if prev, ok := c.sources[name]; ok {
		return fmt.Errorf("action %q from %s already registered by %s", name, source, prev)
	}
	c.byName[name] = a
	c.sources[name] = source
	return nil
}

// Lookup returns the action registered under name.
func (c *Catalog) Lookup(name string) (grammar.Action, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.byName[name]
	return a, ok
}

// Source returns where name was defined.
func (c *Catalog) Source(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sources[name]
}

// Names returns all action names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered actions.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}
