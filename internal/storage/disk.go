package storage

//go:generate mockgen -source disk.go -destination mock_disk_manager.go -package storage

// DiskManager reads and writes fixed-size pages and hands out page ids.
// Every call is synchronous; implementations must be safe for concurrent use.
type DiskManager interface {
	// ReadPage fills dst with the page's bytes. Pages that were never written
	// read back as zeros.
	ReadPage(id PageID, dst []byte) error
	// WritePage stores src as the page's bytes.
	WritePage(id PageID, src []byte) error
	// AllocatePage returns a page id that is not in use.
	AllocatePage() (PageID, error)
	// DeallocatePage releases the page id. Releasing an id that is not
	// allocated is a no-op.
	DeallocatePage(id PageID) error
	Close() error
}
