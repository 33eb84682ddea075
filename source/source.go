// Package source provides read-only key-value configuration origins and
// their composition.
//
// A Source is a flat mapping from dotted string keys to values. The package
// offers a map-backed implementation that can be frozen against modification
// and a composite that resolves keys across an ordered stack of sources with
// first-match precedence.
package source

// Source is a single origin of key-value configuration data.
type Source interface {
	// Name returns the fixed identity of the source.
	Name() string

	// Get returns the raw value for a key.
	// Returns nil, false if the key is not defined.
	Get(key string) (any, bool)

	// Keys returns all keys defined by the source, sorted.
	Keys() []string
}

// Configuration extends Source with typed accessors and guarded mutation.
type Configuration interface {
	Source

	// GetString returns the string value for a key, or "" if unset.
	GetString(key string) string

	// GetBoolean returns the boolean value for a key, or def if the key is
	// unset or not convertible to a boolean.
	GetBoolean(key string, def bool) bool

	// GetLong returns the integer value for a key, or def if the key is
	// unset or not convertible to an integer.
	GetLong(key string, def int64) int64

	// GetList returns the list value for a key, or nil if unset.
	// Comma-separated string values are split into elements.
	GetList(key string) []string

	// Set stores a value under a key.
	// Frozen configurations return ErrReadOnly.
	Set(key string, value any) error
}

// Freezer is implemented by configurations that can be made read-only.
// Freezing is one-way.
type Freezer interface {
	Freeze()
}
