package gbfs

import "sync/atomic"

// Cache publishes availability snapshots to concurrent readers. Readers get
// whichever snapshot was current when they asked; publication is a single
// atomic pointer swap, never an in-place edit, so the old and new captures
// can never mix.
type Cache struct {
	current atomic.Pointer[Snapshot]
}

func NewCache(initial *Snapshot) *Cache {
	c := &Cache{}
	if initial != nil {
		c.current.Store(initial)
	}
	return c
}

// Current returns the snapshot visible right now, or nil when nothing has
// been published yet.
func (c *Cache) Current() *Snapshot { return c.current.Load() }

// Publish atomically replaces the current snapshot.
func (c *Cache) Publish(s *Snapshot) {
	if s == nil {
		return
	}
	c.current.Store(s)
}
