package loader

import (
	"os"
	"path/filepath"

	"github.com/dshills/confstack/source"
)

// Default source file base names, lowest precedence first: framework
// defaults, application properties, local developer overrides.
var defaultBaseNames = []string{
	"confstack-defaults",
	"confstack-app",
	"confstack-local",
}

// Extensions recognized for default source files, in probe order.
var defaultExtensions = []string{".toml", ".yaml", ".yml"}

// DefaultSource builds the built-in default source by merging
// confstack-defaults, confstack-app, and confstack-local files found in the
// given directories. Later base names override earlier ones, so a local
// override always wins over an application property, which wins over a
// framework default. All files are optional; with none present the source
// is empty. The result is frozen.
//
// With no directories given, the working directory is searched.
func DefaultSource(dirs ...string) (*source.Map, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	merged := source.NewMap("default", nil)
	for _, base := range defaultBaseNames {
		for _, dir := range dirs {
			path, ok := probe(dir, base)
			if !ok {
				continue
			}

			src, err := FileSource(path)
			if err != nil {
				return nil, err
			}
			if src == nil {
				continue
			}
			for _, key := range src.Keys() {
				if val, ok := src.Get(key); ok {
					_ = merged.Set(key, val) // not frozen yet
				}
			}
		}
	}

	merged.Freeze()
	return merged, nil
}

// probe returns the first existing file for a base name in a directory.
func probe(dir, base string) (string, bool) {
	for _, ext := range defaultExtensions {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
