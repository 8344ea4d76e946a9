package syncer

import (
	"sync"
	"time"
)

// Debouncer drops repeat requests arriving within a window of the last
// accepted request for the same key. Requests are dropped, not queued.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether a request for key may proceed, and records it if so.
func (d *Debouncer) Allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if at, ok := d.last[key]; ok && now.Sub(at) < d.window {
		return false
	}
	d.last[key] = now
	return true
}

// Cleanup removes entries older than the window.
func (d *Debouncer) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for key, at := range d.last {
		if now.Sub(at) >= d.window {
			delete(d.last, key)
		}
	}
}
