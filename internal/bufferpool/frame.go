package bufferpool

import "github.com/tuannm99/novapool/internal/storage"

// frame is one slot of the pool. Its metadata only changes under the
// manager's lock and only through these methods.
type frame struct {
	buf    storage.Buffer
	pageID storage.PageID
	pin    int32
	dirty  bool

	// wroteBack marks a victim flushed by the eviction in progress.
	wroteBack bool
}

// install makes f hold pageID with a single pin.
func (f *frame) install(pageID storage.PageID, dirty bool) {
	f.pageID = pageID
	f.pin = 1
	f.dirty = dirty
}

func (f *frame) pinOnce() { f.pin++ }

// unpin drops one pin and folds dirty into the frame. It refuses to go
// below zero and then leaves the frame untouched.
func (f *frame) unpin(dirty bool) error {
	if f.pin <= 0 {
		return ErrDoubleUnpin
	}
	f.dirty = f.dirty || dirty
	f.pin--
	return nil
}

func (f *frame) markClean() { f.dirty = false }

// reset returns f to the free state.
func (f *frame) reset() {
	f.buf.Zero()
	f.pageID = storage.InvalidPageID
	f.pin = 0
	f.dirty = false
	f.wroteBack = false
}
