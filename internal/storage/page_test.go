package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_ZeroAndBytes(t *testing.T) {
	var b Buffer
	raw := b.Bytes()
	require.Len(t, raw, PageSize)

	raw[0] = 1
	raw[PageSize-1] = 2
	require.Equal(t, byte(1), b[0])

	b.Zero()
	require.Equal(t, make([]byte, PageSize), b.Bytes())
}

func TestPageID_Valid(t *testing.T) {
	require.True(t, PageID(0).Valid())
	require.False(t, InvalidPageID.Valid())
	require.Equal(t, "page(7)", PageID(7).String())
	require.Equal(t, "page(none)", InvalidPageID.String())
}
