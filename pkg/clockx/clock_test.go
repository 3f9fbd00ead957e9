package clockx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClock_New_DefaultCapacity(t *testing.T) {
	c := New(0)
	require.NotNil(t, c)
	require.Equal(t, 1, c.Capacity())
	require.Equal(t, 0, c.Size())
}

func TestClock_New_AllSlotsStartPinned(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		require.True(t, c.Pinned(i))
		require.False(t, c.Referenced(i))
	}

	id, ok := c.Evict()
	require.False(t, ok)
	require.Equal(t, -1, id)
	require.Equal(t, 0, c.Hand())
}

func TestClock_Unpin_SetsReferenceAndCounts(t *testing.T) {
	c := New(3)

	c.Unpin(1)
	require.Equal(t, 1, c.Size())
	require.False(t, c.Pinned(1))
	require.True(t, c.Referenced(1))

	// Unpinning again does not count twice.
	c.Unpin(1)
	require.Equal(t, 1, c.Size())

	c.Pin(1)
	require.Equal(t, 0, c.Size())
	require.True(t, c.Pinned(1))

	// Pin is idempotent.
	c.Pin(1)
	require.Equal(t, 0, c.Size())
}

func TestClock_Evict_SecondChanceThenFirstSlot(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Unpin(i)
	}
	require.Equal(t, 3, c.Size())

	// One revolution clears all three reference bits, the next one takes slot 0.
	v, ok := c.Evict()
	require.True(t, ok)
	require.Equal(t, 0, v)
	require.Equal(t, 1, c.Hand())
	require.Equal(t, 2, c.Size())
	require.True(t, c.Pinned(0))
	require.False(t, c.Referenced(1))
	require.False(t, c.Referenced(2))

	// References are already clear, so the hand order decides.
	v, ok = c.Evict()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = c.Evict()
	require.True(t, ok)
	require.Equal(t, 2, v)

	v, ok = c.Evict()
	require.False(t, ok)
	require.Equal(t, -1, v)
}

func TestClock_Evict_SingleReferencedCandidate(t *testing.T) {
	c := New(4)
	c.Unpin(2)

	v, ok := c.Evict()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 3, c.Hand())
	require.Equal(t, 0, c.Size())
}

func TestClock_Evict_RespectsRefBit(t *testing.T) {
	c := New(3)
	c.Unpin(0)
	c.Unpin(1)

	// First victim clears both bits and lands on 0.
	v, ok := c.Evict()
	require.True(t, ok)
	require.Equal(t, 0, v)

	// Give 0 back with a fresh reference; 1 has none, so 1 goes next.
	c.Unpin(0)
	v, ok = c.Evict()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestClock_Evict_SkipsPinned(t *testing.T) {
	c := New(3)
	c.Unpin(0)
	c.Unpin(1)
	c.Unpin(2)
	c.Pin(0)
	c.Pin(2)

	v, ok := c.Evict()
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Evict()
	require.False(t, ok)
}

func TestClock_BoundsChecks(t *testing.T) {
	c := New(2)

	// Out of range should not panic / change size
	c.Unpin(-1)
	c.Unpin(2)
	c.Pin(-1)
	c.Pin(2)

	require.Equal(t, 0, c.Size())
	require.True(t, c.Pinned(5))
	require.False(t, c.Referenced(-3))
}
