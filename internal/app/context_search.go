package app

// contextSearchState tracks whether a context lookup is in flight.
type contextSearchState int

const (
	contextIdle contextSearchState = iota
	contextQuerying
)

// ContextSearchCoordinator decides when the cursor has strayed far
// enough from the last queried position to justify another context
// lookup, and matches responses back to requests so a slow reply can
// never clobber a newer one.
type ContextSearchCoordinator struct {
	threshold         int
	state             contextSearchState
	lastQueriedOffset int
	seq               int
}

func NewContextSearchCoordinator(threshold int) *ContextSearchCoordinator {
	return &ContextSearchCoordinator{threshold: threshold}
}

// ShouldQuery reports whether a lookup is warranted for the cursor at
// offset in a document of docLen UTF-16 units. Empty documents never
// warrant one.
func (c *ContextSearchCoordinator) ShouldQuery(offset, docLen int) bool {
	if c.state == contextQuerying {
		return false
	}
	if docLen <= 0 {
		return false
	}
	delta := offset - c.lastQueriedOffset
	if delta < 0 {
		delta = -delta
	}
	return delta > c.threshold
}

// Begin marks a lookup as started and returns its sequence number.
func (c *ContextSearchCoordinator) Begin() int {
	c.seq++
	c.state = contextQuerying
	return c.seq
}

// Accept reports whether the response with the given sequence number
// is current. A current success records the queried offset so the next
// gate measures from it.
func (c *ContextSearchCoordinator) Accept(seq, offset int) bool {
	if seq != c.seq {
		return false
	}
	c.state = contextIdle
	c.lastQueriedOffset = offset
	return true
}

// Fail returns the coordinator to idle without moving the reference
// offset, so the same cursor position can retry.
func (c *ContextSearchCoordinator) Fail(seq int) bool {
	if seq != c.seq {
		return false
	}
	c.state = contextIdle
	return true
}

// Reset clears in-flight state and the reference offset, invalidating
// any outstanding responses. Call it when the document changes out
// from under the cursor.
func (c *ContextSearchCoordinator) Reset() {
	c.seq++
	c.state = contextIdle
	c.lastQueriedOffset = 0
}

func (c *ContextSearchCoordinator) Querying() bool {
	return c.state == contextQuerying
}
