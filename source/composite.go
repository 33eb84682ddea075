package source

import "sort"

// Composite resolves keys across an ordered stack of sources.
// Lookup scans the base first, then the added sources in order, returning
// the first hit. Writes go to the base until the composite is frozen.
type Composite struct {
	name    string
	base    *Map
	sources []Source
}

// NewComposite creates a composite seeded with an empty mutable base,
// followed by the given sources in order.
func NewComposite(name string, sources ...Source) *Composite {
	return &Composite{
		name:    name,
		base:    NewMap(name+".base", nil),
		sources: append([]Source(nil), sources...),
	}
}

// Add appends a source at the lowest precedence position.
func (c *Composite) Add(src Source) {
	c.sources = append(c.sources, src)
}

// Name returns the source identity.
func (c *Composite) Name() string {
	return c.name
}

// Get returns the raw value for a key from the highest-precedence source
// that defines it.
func (c *Composite) Get(key string) (any, bool) {
	if val, ok := c.base.Get(key); ok {
		return val, true
	}
	for _, src := range c.sources {
		if val, ok := src.Get(key); ok {
			return val, true
		}
	}
	return nil, false
}

// Keys returns the union of all source keys, sorted.
func (c *Composite) Keys() []string {
	seen := make(map[string]struct{})
	for _, key := range c.base.Keys() {
		seen[key] = struct{}{}
	}
	for _, src := range c.sources {
		for _, key := range src.Keys() {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the string value for a key, or "" if unset.
func (c *Composite) GetString(key string) string {
	return stringValue(c, key)
}

// GetBoolean returns the boolean value for a key, or def if unset.
func (c *Composite) GetBoolean(key string, def bool) bool {
	return boolValue(c, key, def)
}

// GetLong returns the integer value for a key, or def if unset.
func (c *Composite) GetLong(key string, def int64) int64 {
	return longValue(c, key, def)
}

// GetList returns the list value for a key, or nil if unset.
func (c *Composite) GetList(key string) []string {
	return listValue(c, key)
}

// Set stores a value in the mutable base, where it takes precedence over
// every added source. Returns ErrReadOnly after Freeze.
func (c *Composite) Set(key string, value any) error {
	return c.base.Set(key, value)
}

// Freeze makes the composite read-only by freezing its base.
func (c *Composite) Freeze() {
	c.base.Freeze()
}

// Sources returns the stack in precedence order, base first.
func (c *Composite) Sources() []Source {
	stack := make([]Source, 0, len(c.sources)+1)
	stack = append(stack, c.base)
	stack = append(stack, c.sources...)
	return stack
}
