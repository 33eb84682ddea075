package confstack

import (
	"go.uber.org/zap"

	"github.com/dshills/confstack/source"
)

// dump logs every resolved property after a load when the dump key is set.
// Intended for debugging which file or loader a value came from; values
// are logged verbatim, so leave the flag off where properties hold
// secrets.
func (h *Holder) dump(cfg source.Configuration) {
	if !cfg.GetBoolean(DumpKey, false) {
		return
	}

	h.log.Info("properties loaded start")
	for _, key := range cfg.Keys() {
		val, _ := cfg.Get(key)
		h.log.Info("property loaded",
			zap.String("key", key),
			zap.Any("value", val))
	}
	h.log.Info("properties loaded end")
}
