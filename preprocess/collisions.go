package preprocess

import "sync"

// CollisionTracker records every literal hashed during a batch run and
// detects two distinct literals mapping to the same 32-bit value. It
// is safe for concurrent use so a caller can share one tracker across
// files processed in parallel.
type CollisionTracker struct {
	mu   sync.Mutex
	seen map[uint32]string
}

// NewCollisionTracker returns an empty tracker.
func NewCollisionTracker() *CollisionTracker {
	return &CollisionTracker{seen: make(map[uint32]string)}
}

// Note records that lit hashed to h. If a different literal was
// already recorded for h, it returns that first literal and true.
// Re-hashing the same literal is not a collision.
func (c *CollisionTracker) Note(h uint32, lit string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	first, ok := c.seen[h]
	if !ok {
		c.seen[h] = lit
		return "", false
	}
	if first == lit {
		return "", false
	}
	return first, true
}

// Len returns the number of distinct hashes recorded.
func (c *CollisionTracker) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}
