package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// LocalFileSet represents a local directory + base file name.
// Segments are stored as: Base, Base.1, Base.2, ...
type LocalFileSet struct {
	Dir  string
	Base string
}

func (lfs LocalFileSet) segmentPath(segNo int32) string {
	name := lfs.Base
	if segNo > 0 {
		name = fmt.Sprintf("%s.%d", lfs.Base, segNo)
	}
	return filepath.Join(lfs.Dir, name)
}

// OpenSegment opens (RDWR | CREATE, no truncate) the given segment file.
func (lfs LocalFileSet) OpenSegment(segNo int32) (*os.File, error) {
	if err := os.MkdirAll(lfs.Dir, FileMode0755); err != nil {
		return nil, err
	}
	return os.OpenFile(lfs.segmentPath(segNo), os.O_RDWR|os.O_CREATE, FileMode0644)
}

var _ DiskManager = (*FileDiskManager)(nil)

// FileDiskManager maps a logical pageID -> (segment, offset) inside a
// LocalFileSet. Released ids are kept in memory and handed out again,
// lowest first, before the file grows.
type FileDiskManager struct {
	fs LocalFileSet

	mu       sync.Mutex
	segments map[int32]*os.File
	next     PageID   // first id never handed out
	free     []PageID // sorted ascending
	closed   bool
}

// OpenFileDiskManager opens the file set and resumes allocation after the
// last page present on disk.
func OpenFileDiskManager(fs LocalFileSet) (*FileDiskManager, error) {
	dm := &FileDiskManager{
		fs:       fs,
		segments: make(map[int32]*os.File),
	}
	n, err := dm.countPages()
	if err != nil {
		return nil, fmt.Errorf("storage: count pages: %w", err)
	}
	dm.next = PageID(n)
	return dm, nil
}

func locate(id PageID) (segNo int32, offset int64) {
	segNo = int32(id) / MaxPagePerSegment
	offset = int64(int32(id)%MaxPagePerSegment) * PageSize
	return segNo, offset
}

// segment returns the cached handle for segNo. With create false a missing
// segment yields (nil, nil) and nothing is created. Caller holds mu.
func (dm *FileDiskManager) segment(segNo int32, create bool) (*os.File, error) {
	if f, ok := dm.segments[segNo]; ok {
		return f, nil
	}
	var (
		f   *os.File
		err error
	)
	if create {
		f, err = dm.fs.OpenSegment(segNo)
	} else {
		f, err = os.OpenFile(dm.fs.segmentPath(segNo), os.O_RDWR, FileMode0644)
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	dm.segments[segNo] = f
	return f, nil
}

// ReadPage reads exactly one page into dst. If the segment is shorter than
// offset+PageSize the remainder is zero-filled, so pages that were allocated
// but never written read back as zeros. Reading never creates a segment.
func (dm *FileDiskManager) ReadPage(id PageID, dst []byte) error {
	if err := checkPage(id, dst); err != nil {
		return err
	}
	segNo, off := locate(id)

	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.closed {
		return ErrClosed
	}
	f, err := dm.segment(segNo, false)
	if err != nil {
		return err
	}
	if f == nil {
		clear(dst)
		return nil
	}

	n, err := f.ReadAt(dst, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("storage: read %s: %w", id, err)
	}
	clear(dst[n:])
	return nil
}

// WritePage writes exactly one page from src at the location computed from id.
func (dm *FileDiskManager) WritePage(id PageID, src []byte) error {
	if err := checkPage(id, src); err != nil {
		return err
	}
	segNo, off := locate(id)

	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.closed {
		return ErrClosed
	}
	f, err := dm.segment(segNo, true)
	if err != nil {
		return err
	}

	n, err := f.WriteAt(src, off)
	if err != nil {
		return fmt.Errorf("storage: write %s: %w", id, err)
	}
	if n != PageSize {
		return io.ErrShortWrite
	}
	if id >= dm.next {
		dm.next = id + 1
	}
	return nil
}

func (dm *FileDiskManager) AllocatePage() (PageID, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.closed {
		return InvalidPageID, ErrClosed
	}
	if len(dm.free) > 0 {
		id := dm.free[0]
		dm.free = slices.Delete(dm.free, 0, 1)
		return id, nil
	}
	id := dm.next
	dm.next++
	return id, nil
}

func (dm *FileDiskManager) DeallocatePage(id PageID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPageID, id)
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.closed {
		return ErrClosed
	}
	if id >= dm.next {
		return nil
	}
	pos, found := slices.BinarySearch(dm.free, id)
	if !found {
		dm.free = slices.Insert(dm.free, pos, id)
	}
	return nil
}

// FreePages returns the ids waiting to be reused, ascending.
func (dm *FileDiskManager) FreePages() []PageID {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return slices.Clone(dm.free)
}

// Close syncs and closes every open segment.
func (dm *FileDiskManager) Close() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.closed {
		return nil
	}
	dm.closed = true

	var err error
	for segNo, f := range dm.segments {
		err = multierr.Append(err, f.Sync())
		err = multierr.Append(err, f.Close())
		delete(dm.segments, segNo)
	}
	return err
}

// countPages computes total pages by scanning segments until one is missing.
func (dm *FileDiskManager) countPages() (int64, error) {
	var total int64
	for segNo := int32(0); ; segNo++ {
		info, err := os.Stat(dm.fs.segmentPath(segNo))
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return 0, err
		}
		// Round a partially written trailing page up.
		total += (info.Size() + PageSize - 1) / PageSize
		if info.Size() < SegmentSize {
			break
		}
	}
	return total, nil
}
