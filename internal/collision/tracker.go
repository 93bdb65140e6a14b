package collision

// Tracker builds a hash-to-string table and detects hash collisions while doing so.
//
// Container string tables store names by 32-bit hash. Two different strings sharing one
// hash cannot be told apart downstream; the tracker keeps the last mapping seen (the
// table semantics of the on-disk format) and records the colliding hash so callers can
// report it.
type Tracker struct {
	names      map[uint32]string // Hash → name mapping
	collisions []uint32          // Hashes seen with more than one distinct name, in order
	seen       map[uint32]struct{}
}

// NewTracker creates a new collision tracker sized for capacity names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		names: make(map[uint32]string, capacity),
	}
}

// Track records that hash resolves to name.
//
// Re-tracking the same (hash, name) pair is a no-op. Tracking a different name under an
// existing hash replaces the mapping and records a collision.
func (t *Tracker) Track(hash uint32, name string) {
	if existing, exists := t.names[hash]; exists && existing != name {
		t.recordCollision(hash)
	}

	t.names[hash] = name
}

func (t *Tracker) recordCollision(hash uint32) {
	if t.seen == nil {
		t.seen = make(map[uint32]struct{})
	}
	if _, dup := t.seen[hash]; dup {
		return
	}

	t.seen[hash] = struct{}{}
	t.collisions = append(t.collisions, hash)
}

// Lookup returns the name tracked for hash.
func (t *Tracker) Lookup(hash uint32) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return len(t.collisions) > 0
}

// Collisions returns the colliding hashes in detection order.
func (t *Tracker) Collisions() []uint32 {
	return t.collisions
}
