package interpreter

import (
	"sync"
	"time"
)

// Cooldown gates automatic translation: at most one automatic call fires
// per interval, and a repeat of the last fired text never re-fires. It
// compares monotonic clock readings, so wall clock adjustments do not
// shorten the window.
type Cooldown struct {
	mu       sync.Mutex
	interval time.Duration
	lastText string
	lastAt   time.Time

	now func() time.Time // overridable in tests
}

// NewCooldown creates a gate with the given minimum interval.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{interval: interval, now: time.Now}
}

// Allow reports whether an automatic translate call may fire for text.
// It passes only when text differs from the last fired text and the
// interval has elapsed since the last fire; the slot is recorded only on
// a pass, so blocked attempts do not extend the window.
func (c *Cooldown) Allow(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if text == c.lastText || now.Sub(c.lastAt) < c.interval {
		return false
	}
	c.lastText = text
	c.lastAt = now
	return true
}
