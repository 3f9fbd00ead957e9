package storage

import "fmt"

// PageID identifies a page on persistent storage.
type PageID int32

// InvalidPageID marks a frame that holds no page.
const InvalidPageID PageID = -1

func (id PageID) Valid() bool { return id >= 0 }

func (id PageID) String() string {
	if !id.Valid() {
		return "page(none)"
	}
	return fmt.Sprintf("page(%d)", int32(id))
}

// Buffer is one page worth of bytes. The buffer pool owns one per frame and
// reuses it across residents.
type Buffer [PageSize]byte

// Bytes exposes the raw page bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b[:] }

// Zero fills the buffer with zeros.
func (b *Buffer) Zero() { clear(b[:]) }

func checkPage(id PageID, buf []byte) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPageID, id)
	}
	if len(buf) != PageSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBadBufferSize, len(buf), PageSize)
	}
	return nil
}
