package source

import "sort"

// Map is a map-backed configuration source.
// A Map starts mutable and can be frozen to reject further writes.
type Map struct {
	name   string
	values map[string]any
	frozen bool
}

// NewMap creates a mutable map source with a deep copy of the given values.
// A nil values map creates an empty source.
func NewMap(name string, values map[string]any) *Map {
	return &Map{
		name:   name,
		values: cloneValues(values),
	}
}

// NewFrozenMap creates a read-only map source with a deep copy of the
// given values.
func NewFrozenMap(name string, values map[string]any) *Map {
	m := NewMap(name, values)
	m.frozen = true
	return m
}

// Name returns the source identity.
func (m *Map) Name() string {
	return m.name
}

// Get returns the raw value for a key.
func (m *Map) Get(key string) (any, bool) {
	val, ok := m.values[key]
	return val, ok
}

// Keys returns all keys, sorted.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the string value for a key, or "" if unset.
func (m *Map) GetString(key string) string {
	return stringValue(m, key)
}

// GetBoolean returns the boolean value for a key, or def if unset.
func (m *Map) GetBoolean(key string, def bool) bool {
	return boolValue(m, key, def)
}

// GetLong returns the integer value for a key, or def if unset.
func (m *Map) GetLong(key string, def int64) int64 {
	return longValue(m, key, def)
}

// GetList returns the list value for a key, or nil if unset.
func (m *Map) GetList(key string) []string {
	return listValue(m, key)
}

// Set stores a value under a key.
// Returns ErrReadOnly if the map has been frozen.
func (m *Map) Set(key string, value any) error {
	if m.frozen {
		return ErrReadOnly
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = cloneValue(value)
	return nil
}

// Delete removes a key.
// Returns ErrReadOnly if the map has been frozen.
func (m *Map) Delete(key string) error {
	if m.frozen {
		return ErrReadOnly
	}
	delete(m.values, key)
	return nil
}

// Freeze makes the map read-only. Freezing is one-way.
func (m *Map) Freeze() {
	m.frozen = true
}

// Frozen reports whether the map rejects writes.
func (m *Map) Frozen() bool {
	return m.frozen
}

// Clone creates an independent mutable deep copy of the map.
func (m *Map) Clone(name string) *Map {
	return NewMap(name, m.values)
}

// CopyOf creates an independent mutable map source with the same key-value
// pairs as the given source. List values are copied by value, so mutating
// the copy never affects the original.
func CopyOf(src Source, name string) *Map {
	copy := NewMap(name, nil)
	for _, key := range src.Keys() {
		if val, ok := src.Get(key); ok {
			copy.values[key] = cloneValue(val)
		}
	}
	return copy
}

// cloneValues creates a deep copy of a flat values map.
func cloneValues(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneValue creates a deep copy of a single value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case []string:
		dst := make([]string, len(v))
		copy(dst, v)
		return dst
	case []any:
		dst := make([]any, len(v))
		for i, item := range v {
			dst[i] = cloneValue(item)
		}
		return dst
	case map[string]any:
		return cloneValues(v)
	default:
		return val
	}
}
