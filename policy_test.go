package arango

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCursorDeterministicPlacementStartsAtZero(t *testing.T) {
	t.Parallel()

	c := newCursor(4, false)
	require.Equal(t, 0, c.take())
}

// TestNewCursorRandomPlacementIsInRange exercises OneRandom's initial
// cursor placement (§4.3): over repeated draws, every starting position
// must fall within [0, numHosts). The distribution itself is not checked.
func TestNewCursorRandomPlacementIsInRange(t *testing.T) {
	t.Parallel()

	const numHosts = 5
	for i := 0; i < 50; i++ {
		c := newCursor(numHosts, true)
		pos := c.take()
		require.GreaterOrEqual(t, pos, 0)
		require.Less(t, pos, numHosts)
	}
}

func TestNewCursorRandomPlacementWithSingleHostIsZero(t *testing.T) {
	t.Parallel()

	c := newCursor(1, true)
	require.Equal(t, 0, c.take())
}

func TestNewCursorRandomPlacementWithNoHostsIsZero(t *testing.T) {
	t.Parallel()

	c := newCursor(0, true)
	require.Equal(t, 0, c.take())
}
