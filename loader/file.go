package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/confstack/source"
)

// ErrUnsupportedFormat indicates a config file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// FileSource reads a TOML or YAML file into a frozen map source. Nested
// tables are flattened to dotted keys, so "timeout" under an "app" table
// becomes "app.timeout".
//
// A missing file yields nil, nil: file sources are optional by design.
func FileSource(path string) (*source.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	nested, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	flat := make(map[string]any)
	flatten("", nested, flat)
	return source.NewFrozenMap(filepath.Base(path), flat), nil
}

// parse decodes file contents by extension.
func parse(path string, data []byte) (map[string]any, error) {
	nested := make(map[string]any)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &nested); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return nested, nil
}

// flatten converts a nested map into dotted flat keys.
func flatten(prefix string, nested map[string]any, out map[string]any) {
	for key, val := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		if child, ok := val.(map[string]any); ok {
			flatten(full, child, out)
			continue
		}
		out[full] = val
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
