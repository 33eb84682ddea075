package confstack

import "sync"

// Package-level default holder for applications that want the classic
// single-access-point pattern without threading a *Holder through.

var (
	defaultMu     sync.Mutex
	defaultHolder *Holder
)

// Default returns the package-level holder, creating it with default
// options on first use. The construction error of the first load is
// returned; once a holder has been created, Default never fails.
func Default() (*Holder, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHolder == nil {
		h, err := New()
		if err != nil {
			return nil, err
		}
		defaultHolder = h
	}
	return defaultHolder, nil
}

// SetDefault replaces the package-level holder. Pass a holder built with
// the options your application needs before anything calls Default.
func SetDefault(h *Holder) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultHolder = h
}
