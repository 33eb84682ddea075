// Package confstack is the central access point to layered application
// configuration.
//
// A Holder owns the currently active configuration: the merge of any
// registered loader sources with the built-in default source (framework
// defaults, application properties, local developer overrides). Callers
// receive an immutable snapshot; an optional touchfile triggers a
// synchronized reload without restarting the process, and registered
// listeners are told whenever the active configuration changes.
package confstack

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/confstack/loader"
	"github.com/dshills/confstack/source"
	"github.com/dshills/confstack/touchfile"
)

// Well-known property keys consumed by the holder itself.
const (
	// TouchfileKey names the optional touchfile path.
	TouchfileKey = "confstack.config.touchfile"

	// TouchfileIntervalKey names the minimum milliseconds between
	// touchfile checks.
	TouchfileIntervalKey = "confstack.config.touchfile.interval"

	// DumpKey enables logging of every resolved property after a load.
	DumpKey = "confstack.config.dump"

	// DefaultTouchfileInterval is the touchfile check interval in
	// milliseconds when TouchfileIntervalKey is absent.
	DefaultTouchfileInterval = 10000
)

// Listener receives a generic "configuration changed" signal. No diff is
// carried; a listener needing before/after values must re-read and compare
// itself.
type Listener interface {
	ConfigurationChanged()
}

// SourceFactory builds the default source. Supplied at construction time
// so the set of default source implementations is compile-time checked.
type SourceFactory func() (source.Configuration, error)

// generation is one atomically-installed (snapshot, touchfile) pair.
type generation struct {
	config source.Configuration
	touch  *touchfile.Monitor
}

// Holder is the process-wide owner of the active configuration.
//
// All mutation paths (load, reset, set, and the touchfile-triggered reload
// inside Get) run under one mutex, so no reader ever observes a
// half-replaced generation and two goroutines racing on a stale touchfile
// never both reload. The active generation itself is swapped through an
// atomic pointer, so reads that take no lock are still safe while a
// reload is in flight.
type Holder struct {
	mu      sync.Mutex
	current atomic.Pointer[generation]

	// Listener registry: identity-deduplicated, registration only.
	listeners []Listener

	registry       *loader.Registry
	loadersEnabled bool
	appendDefault  bool
	defaultSource  SourceFactory
	log            *zap.Logger
}

// Option configures a Holder.
type Option func(*Holder)

// WithRegistry sets the loader registry. The registry is consulted afresh
// on every reload, so loaders registered after construction take effect on
// the next reload.
func WithRegistry(r *loader.Registry) Option {
	return func(h *Holder) {
		if r != nil {
			h.registry = r
		}
	}
}

// WithLoaders is shorthand for a registry seeded with the given loaders.
func WithLoaders(loaders ...loader.Loader) Option {
	return func(h *Holder) {
		h.registry = loader.NewRegistry(loaders...)
	}
}

// WithLoadersEnabled controls whether registered loaders participate at
// all. Disabled, the default source alone is used. Enabled by default.
func WithLoadersEnabled(enabled bool) Option {
	return func(h *Holder) {
		h.loadersEnabled = enabled
	}
}

// WithAppendDefault controls whether the default source is appended at the
// lowest precedence when loaders are present. When false and at least one
// loader is registered, the default source is excluded entirely. Enabled
// by default.
func WithAppendDefault(enabled bool) Option {
	return func(h *Holder) {
		h.appendDefault = enabled
	}
}

// WithDefaultSource sets the factory for the built-in default source.
func WithDefaultSource(f SourceFactory) Option {
	return func(h *Holder) {
		if f != nil {
			h.defaultSource = f
		}
	}
}

// WithSearchDirs points the built-in default source at the given
// directories instead of the working directory.
func WithSearchDirs(dirs ...string) Option {
	return func(h *Holder) {
		h.defaultSource = func() (source.Configuration, error) {
			return loader.DefaultSource(dirs...)
		}
	}
}

// WithLogger sets the logger. The holder is silent by default.
func WithLogger(log *zap.Logger) Option {
	return func(h *Holder) {
		if log != nil {
			h.log = log
		}
	}
}

// New creates a Holder and performs the first load. A failure to build the
// default source (or any loader source) is returned as an error and leaves
// no configuration installed; treat it as a process-start failure.
func New(opts ...Option) (*Holder, error) {
	h := &Holder{
		registry:       loader.NewRegistry(),
		loadersEnabled: true,
		appendDefault:  true,
		defaultSource: func() (source.Configuration, error) {
			return loader.DefaultSource()
		},
		log: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(h)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadLocked(); err != nil {
		return nil, err
	}
	return h, nil
}

// Get returns the active configuration snapshot.
//
// If the active generation has a touchfile armed, the file is checked
// first (rate-limited by its interval) under the holder mutex; a detected
// change triggers a full reload before returning. A failed reload keeps
// the previous generation active and is logged, never surfaced to the
// reader. With no touchfile armed, Get takes no lock and performs no I/O.
//
// When the mutex is already held — a concurrent reload, or a listener
// re-reading during notification — Get skips the touchfile check and
// serves the current snapshot instead of blocking.
func (h *Holder) Get() source.Configuration {
	gen := h.current.Load()
	if gen.touch == nil {
		return gen.config
	}

	if !h.mu.TryLock() {
		return h.current.Load().config
	}
	defer h.mu.Unlock()

	gen = h.current.Load()
	if gen.touch.Armed() && gen.touch.HasChanged() {
		h.log.Info("touchfile changed, reloading configuration",
			zap.String("touchfile", gen.touch.Path()))
		if err := h.loadLocked(); err != nil {
			h.log.Error("configuration reload failed, keeping previous generation",
				zap.Error(err))
		}
	}
	return h.current.Load().config
}

// Reset forces an unconditional reload from scratch, discarding any
// programmatic overrides. Primarily intended for test isolation. On error
// the previous generation remains active.
func (h *Holder) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadLocked()
}

// SetConfiguration installs a caller-supplied snapshot as the active
// configuration, reconfigures the touchfile from it, and notifies
// listeners.
//
// This bypasses loader assembly entirely: any registered loaders are
// ignored until the next Reset or touchfile reload. The snapshot is
// installed as-is, mutability included, so a copy obtained from Copy can
// be adjusted after installation; Reset discards such adjustments.
func (h *Holder) SetConfiguration(cfg source.Configuration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.install(cfg)
	h.notifyLocked()
}

// NotifyListeners synchronously invokes every registered listener with the
// generic changed signal. No-op when nothing is registered.
//
// Listeners are not isolated from each other: a panicking listener aborts
// the remaining notifications in the pass and propagates to the caller.
func (h *Holder) NotifyListeners() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifyLocked()
}

// AddPropertyChangeListener registers a listener for configuration change
// notifications. Adding the same listener twice is a no-op. Listeners
// cannot be removed; they live for the process lifetime.
//
// Notifications fire only when the holder itself installs a new
// generation. A configuration mutated in place does not notify; call
// NotifyListeners manually in that case.
func (h *Holder) AddPropertyChangeListener(l Listener) {
	if l == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.listeners {
		if sameListener(existing, l) {
			return
		}
	}
	h.listeners = append(h.listeners, l)
}

// sameListener compares listeners by interface identity, guarding against
// uncomparable dynamic types.
func sameListener(a, b Listener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Copy creates an independent mutable deep copy of a configuration.
// List-valued properties are copied by value, so mutating the copy never
// changes values observable through the original. Useful for tests that
// adjust configuration via SetConfiguration.
func Copy(cfg source.Source) *source.Map {
	return source.CopyOf(cfg, cfg.Name())
}

// loadLocked assembles and installs a fresh generation.
// Callers must hold h.mu.
func (h *Holder) loadLocked() error {
	cfg, err := h.assemble()
	if err != nil {
		return err
	}

	h.install(cfg)
	h.notifyLocked()
	return nil
}

// assemble builds the merged configuration per the precedence rules:
// loader sources in registration order, then the default source last iff
// appending is enabled. With no loaders, the default source stands alone.
func (h *Holder) assemble() (source.Configuration, error) {
	var loaders []loader.Loader
	if h.loadersEnabled {
		loaders = h.registry.Loaders()
	}

	if len(loaders) == 0 {
		cfg, err := h.defaultSource()
		if err != nil {
			return nil, fmt.Errorf("building default source: %w", err)
		}
		// Loaded generations are read-only by contract.
		if f, ok := cfg.(source.Freezer); ok {
			f.Freeze()
		}
		return cfg, nil
	}

	comp := source.NewComposite("composite")
	for _, l := range loaders {
		src, err := l.Configuration()
		if err != nil {
			return nil, fmt.Errorf("loader %T: %w", l, err)
		}
		comp.Add(src)
	}

	if h.appendDefault {
		def, err := h.defaultSource()
		if err != nil {
			return nil, fmt.Errorf("building default source: %w", err)
		}
		comp.Add(def)
	}

	comp.Freeze()
	return comp, nil
}

// install atomically replaces the active generation, deriving the
// touchfile monitor from the new configuration's own settings.
// Callers must hold h.mu.
func (h *Holder) install(cfg source.Configuration) {
	gen := &generation{
		config: cfg,
		touch:  monitorFor(cfg),
	}
	h.current.Store(gen)

	if gen.touch != nil {
		h.log.Info("touchfile armed",
			zap.String("touchfile", gen.touch.Path()),
			zap.Duration("interval", gen.touch.Interval()))
	}
	h.dump(cfg)
}

// monitorFor builds a touchfile monitor from a configuration's own
// settings, or nil when no touchfile is configured.
func monitorFor(cfg source.Configuration) *touchfile.Monitor {
	path := cfg.GetString(TouchfileKey)
	if path == "" {
		return nil
	}

	ms := cfg.GetLong(TouchfileIntervalKey, DefaultTouchfileInterval)
	return touchfile.New(path, time.Duration(ms)*time.Millisecond)
}

// notifyLocked fans out the changed signal. Callers must hold h.mu.
func (h *Holder) notifyLocked() {
	if len(h.listeners) == 0 {
		return
	}
	for _, l := range h.listeners {
		l.ConfigurationChanged()
	}
}
