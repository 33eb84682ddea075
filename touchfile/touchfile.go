// Package touchfile implements lazy change detection for a sentinel file.
//
// A touchfile signals "configuration should be reloaded" through its
// modification time. The monitor is checked on access only; it starts no
// goroutines and performs at most one file stat per interval.
package touchfile

import (
	"os"
	"time"
)

// DefaultInterval is the minimum time between file stats when no interval
// is configured.
const DefaultInterval = 10 * time.Second

// Monitor tracks the modification time of a touchfile.
//
// A monitor with an empty path is disarmed: HasChanged always reports
// false and performs no I/O. Monitor is not safe for concurrent use; the
// caller serializes access.
type Monitor struct {
	path      string
	interval  time.Duration
	lastCheck time.Time
	lastMod   time.Time
}

// New creates a monitor for the given path, rate-limited by interval.
// A non-positive interval falls back to DefaultInterval. The file's
// current modification time, if the file exists, becomes the baseline so
// only later modifications report as changes.
func New(path string, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	m := &Monitor{
		path:     path,
		interval: interval,
	}

	if path != "" {
		if info, err := os.Stat(path); err == nil {
			m.lastMod = info.ModTime()
		}
	}

	return m
}

// Armed reports whether the monitor has a path to watch.
func (m *Monitor) Armed() bool {
	return m != nil && m.path != ""
}

// Path returns the watched file path.
func (m *Monitor) Path() string {
	return m.path
}

// Interval returns the minimum time between file stats.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// HasChanged reports whether the touchfile has been modified since the
// last detected change.
//
// Calls within the interval window return false without any I/O. Once the
// window has elapsed, the file is stat'd and the last-checked time resets,
// so the interval always rate-limits from the most recent stat rather
// than the last detected change. A missing or unreadable file reports as
// unchanged: the touchfile is optional lifecycle infrastructure, not a
// source of truth.
func (m *Monitor) HasChanged() bool {
	if !m.Armed() {
		return false
	}

	now := time.Now()
	if !m.lastCheck.IsZero() && now.Sub(m.lastCheck) < m.interval {
		return false
	}
	m.lastCheck = now

	info, err := os.Stat(m.path)
	if err != nil {
		return false
	}

	if info.ModTime().After(m.lastMod) {
		m.lastMod = info.ModTime()
		return true
	}
	return false
}
