package loader

import (
	"github.com/knadh/koanf/v2"

	"github.com/dshills/confstack/source"
)

// KoanfLoader adapts an existing koanf instance into a Loader, letting
// applications that already aggregate configuration with koanf contribute
// it as a source. The koanf instance is re-read on every reload, so
// provider updates flow through naturally.
//
// Keys are taken from koanf's flattened view; use a "." key delimiter on
// the koanf instance so resolved paths line up with dotted source keys.
type KoanfLoader struct {
	name string
	k    *koanf.Koanf
}

// NewKoanfLoader creates a loader backed by a koanf instance.
func NewKoanfLoader(name string, k *koanf.Koanf) *KoanfLoader {
	return &KoanfLoader{name: name, k: k}
}

// Configuration implements Loader.
func (l *KoanfLoader) Configuration() (source.Configuration, error) {
	return source.NewFrozenMap(l.name, l.k.All()), nil
}
