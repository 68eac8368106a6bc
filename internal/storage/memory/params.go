package memory

import (
	"sort"
	"sync"
)

// Well-known CONFIG parameter names.
const (
	ParamDir        = "dir"
	ParamDBFilename = "dbfilename"
)

// ConfigStore holds runtime configuration parameters as strings.
//
// It is shared by every connection; a CONFIG SET on one connection is
// visible to CONFIG GET on every other connection once it returns.
type ConfigStore struct {
	mu     sync.RWMutex
	params map[string]string
}

// NewConfigStore creates a ConfigStore seeded with a copy of seed.
// Entries with an empty value are skipped so the parameter stays absent.
func NewConfigStore(seed map[string]string) *ConfigStore {
	c := &ConfigStore{
		params: make(map[string]string, len(seed)),
	}
	for k, v := range seed {
		if v == "" {
			continue
		}
		c.params[k] = v
	}
	return c
}

// Get returns the value of a parameter.
func (c *ConfigStore) Get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.params[name]
	return v, ok
}

// Set creates or replaces a parameter.
func (c *ConfigStore) Set(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[name] = value
}

// Names returns the parameter names in sorted order.
func (c *ConfigStore) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.params))
	for k := range c.params {
		names = append(names, k)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all parameters.
func (c *ConfigStore) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.params))
	for k, v := range c.params {
		out[k] = v
	}
	return out
}
