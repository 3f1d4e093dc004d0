package arango

import "github.com/mysticaltech/arangojs/internal"

// LoadBalancingStrategy selects how the dispatcher chooses a host for
// tasks that are neither pinned nor dirty-read.
type LoadBalancingStrategy int

const (
	// None always selects the same host (the cursor never advances on
	// success; only a failover or a leader redirect moves it).
	None LoadBalancingStrategy = iota
	// RoundRobin advances the cursor on every selection, distributing
	// load across hosts in order, and disables the separate
	// failover-on-error cursor advance (the cursor already advances
	// per submission).
	RoundRobin
	// OneRandom behaves like None except that the cursor's initial
	// position is chosen uniformly at random when the dispatcher starts.
	OneRandom
)

// usesFailover reports whether a transport error on this policy should
// advance the primary cursor past the failed host. RoundRobin suppresses
// this since it already advances per selection.
func (s LoadBalancingStrategy) usesFailover() bool {
	return s != RoundRobin
}

// cursor is a single rotating position into the host list, shared by the
// primary selection path (§4.3) and, with an independent instance, the
// dirty-read path. It is not safe for concurrent use; the dispatcher's
// lock protects it.
type cursor struct {
	pos int
}

// newCursor returns a cursor positioned at 0, or, if random is true, at a
// uniformly random position in [0, numHosts), matching the "ONE_RANDOM"
// initial-placement rule in §4.3.
func newCursor(numHosts int, random bool) cursor {
	if !random || numHosts <= 0 {
		return cursor{}
	}
	return cursor{pos: internal.NewRand().Intn(numHosts)}
}

// take returns the cursor's current position without advancing it.
func (c *cursor) take() int {
	return c.pos
}

// advance moves the cursor to the next position modulo numHosts.
func (c *cursor) advance(numHosts int) {
	if numHosts <= 0 {
		return
	}
	c.pos = (c.pos + 1) % numHosts
}

// set moves the cursor directly to the given position, used when a
// leader redirect needs to force it to a specific index.
func (c *cursor) set(pos int) {
	c.pos = pos
}
