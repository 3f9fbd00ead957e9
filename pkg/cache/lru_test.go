package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRU_PushBackKeepsInsertionOrder(t *testing.T) {
	l := NewLRU(4)
	require.True(t, l.PushBack(3))
	require.True(t, l.PushBack(1))
	require.True(t, l.PushBack(2))

	require.Equal(t, []int{3, 1, 2}, l.Items())
	require.Equal(t, 3, l.Len())
}

func TestLRU_DuplicatePushDoesNotReorder(t *testing.T) {
	l := NewLRU(4)
	l.PushBack(1)
	l.PushBack(2)
	require.False(t, l.PushBack(1))

	require.Equal(t, []int{1, 2}, l.Items())
}

func TestLRU_RemoveFromMiddle(t *testing.T) {
	l := NewLRU(4)
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	require.True(t, l.Remove(2))
	require.False(t, l.Remove(2))
	require.False(t, l.Contains(2))
	require.Equal(t, []int{1, 3}, l.Items())
}

func TestLRU_PopFront(t *testing.T) {
	l := NewLRU(2)
	_, ok := l.PopFront()
	require.False(t, ok)

	l.PushBack(7)
	l.PushBack(5)

	id, ok := l.PopFront()
	require.True(t, ok)
	require.Equal(t, 7, id)
	require.False(t, l.Contains(7))

	// Popped ids can come back, at the end.
	l.PushBack(7)
	require.Equal(t, []int{5, 7}, l.Items())
}
