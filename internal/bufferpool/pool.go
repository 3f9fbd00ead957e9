package bufferpool

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tuannm99/novapool/internal/storage"
)

var DefaultCapacity = 128

// Option customizes a Manager at construction.
type Option func(*Manager)

// WithObserver installs the sink that receives pool events.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.obs = o
		}
	}
}

// WithLogManager attaches the write-ahead log.
func WithLogManager(l LogManager) Option {
	return func(m *Manager) { m.log = l }
}

// Manager caches disk pages in a fixed array of frames.
//
// Every exported method runs as one critical section under mu, including the
// storage I/O it performs. A frame with a non-zero pin count is never handed
// to the replacer as a candidate.
type Manager struct {
	disk storage.DiskManager
	log  LogManager
	obs  Observer

	mu        sync.Mutex
	frames    []frame                // len == capacity, allocated once
	pageTable map[storage.PageID]int // PageID -> frame index, resident pages only
	freeList  []int                  // frames holding no page, oldest first
	replacer  Replacer
	scratch   storage.Buffer // read target while a victim is still in its frame
}

// New builds a pool of poolSize frames in front of disk. replacer must be
// sized for poolSize frames and is owned by the pool from now on.
func New(disk storage.DiskManager, replacer Replacer, poolSize int, opts ...Option) *Manager {
	if poolSize <= 0 {
		poolSize = DefaultCapacity
	}
	m := &Manager{
		disk:      disk,
		obs:       NopObserver{},
		frames:    make([]frame, poolSize),
		pageTable: make(map[storage.PageID]int, poolSize),
		freeList:  make([]int, 0, poolSize),
		replacer:  replacer,
	}
	for i := range m.frames {
		m.frames[i].pageID = storage.InvalidPageID
		m.freeList = append(m.freeList, i)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewWithPolicy is New with the replacer built from policy.
func NewWithPolicy(disk storage.DiskManager, policy Policy, poolSize int, opts ...Option) (*Manager, error) {
	if poolSize <= 0 {
		poolSize = DefaultCapacity
	}
	r, err := NewReplacer(policy, poolSize)
	if err != nil {
		return nil, err
	}
	return New(disk, r, poolSize, opts...), nil
}

func storageErr(op string, id storage.PageID, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, id, err)
}

// acquireFrame hands out a frame for a new page, preferring the free list
// over eviction. A dirty victim is written back first; if that write fails
// the victim stays resident and evictable. An evicted victim leaves the page
// table but keeps its id and bytes in the frame until commitFrame, so
// restoreFrame can put it back. Caller holds mu.
func (m *Manager) acquireFrame() (int, error) {
	if len(m.freeList) > 0 {
		idx := m.freeList[0]
		m.freeList = m.freeList[1:]
		return idx, nil
	}

	idx, ok := m.replacer.Victim()
	if !ok {
		return -1, ErrPoolExhausted
	}
	victim := &m.frames[idx]
	if victim.pin != 0 {
		// The replacer and the pin counts disagree. Leave the frame alone.
		return -1, fmt.Errorf("%w: replacer offered pinned frame %d", ErrPoolExhausted, idx)
	}

	if victim.dirty {
		if err := m.disk.WritePage(victim.pageID, victim.buf.Bytes()); err != nil {
			m.replacer.Unpin(idx)
			return -1, storageErr("write back", victim.pageID, err)
		}
		victim.markClean()
		victim.wroteBack = true
	}
	delete(m.pageTable, victim.pageID)
	return idx, nil
}

// commitFrame finishes an eviction started by acquireFrame. Caller holds mu.
func (m *Manager) commitFrame(idx int) {
	f := &m.frames[idx]
	if f.pageID.Valid() {
		m.obs.Observe(Event{Kind: EventEvict, PageID: f.pageID, FrameID: idx, Dirty: f.wroteBack})
	}
	f.pageID = storage.InvalidPageID
	f.wroteBack = false
}

// restoreFrame undoes acquireFrame: an evicted victim becomes resident and
// evictable again, clean if it was written back; a free frame goes back on
// the free list. Caller holds mu.
func (m *Manager) restoreFrame(idx int) {
	f := &m.frames[idx]
	f.wroteBack = false
	if !f.pageID.Valid() {
		m.releaseFrame(idx)
		return
	}
	m.pageTable[f.pageID] = idx
	m.replacer.Unpin(idx)
}

// releaseFrame puts a frame holding no page back. Caller holds mu.
func (m *Manager) releaseFrame(idx int) {
	m.frames[idx].reset()
	m.freeList = append(m.freeList, idx)
}

// FetchPage pins the page, reading it from storage if it is not resident.
// The returned Page stays valid until the matching UnpinPage. When the read
// fails the pool is left as it was, except that a dirty victim may have been
// written back and is now clean.
func (m *Manager) FetchPage(pageID storage.PageID) (*Page, error) {
	if !pageID.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageID, pageID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 1) HIT
	if idx, ok := m.pageTable[pageID]; ok {
		f := &m.frames[idx]
		f.pinOnce()
		m.replacer.Pin(idx)
		m.obs.Observe(Event{Kind: EventHit, PageID: pageID, FrameID: idx})
		return m.pageOf(idx), nil
	}

	// 2) MISS: free frame or victim
	idx, err := m.acquireFrame()
	if err != nil {
		return nil, err
	}
	f := &m.frames[idx]

	// A victim's bytes must survive a failed read, so read beside it.
	hasVictim := f.pageID.Valid()
	dst := f.buf.Bytes()
	if hasVictim {
		dst = m.scratch.Bytes()
	}
	if err := m.disk.ReadPage(pageID, dst); err != nil {
		m.restoreFrame(idx)
		return nil, storageErr("read", pageID, err)
	}

	m.commitFrame(idx)
	if hasVictim {
		f.buf = m.scratch
	}
	f.install(pageID, false)
	m.pageTable[pageID] = idx
	m.replacer.Pin(idx)
	m.obs.Observe(Event{Kind: EventMiss, PageID: pageID, FrameID: idx})
	return m.pageOf(idx), nil
}

// UnpinPage drops one pin. isDirty is ORed into the frame's dirty flag.
// When the last pin goes the frame becomes an eviction candidate.
func (m *Manager) UnpinPage(pageID storage.PageID, isDirty bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.pageTable[pageID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotResident, pageID)
	}
	f := &m.frames[idx]
	if err := f.unpin(isDirty); err != nil {
		return fmt.Errorf("%w: %s", err, pageID)
	}
	if f.pin == 0 {
		m.replacer.Unpin(idx)
	}
	return nil
}

// FlushPage writes the page back if it is dirty. A page that is not
// resident has nothing to flush. A pinned page is refused with ErrPageInUse,
// even when dirty.
func (m *Manager) FlushPage(pageID storage.PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.pageTable[pageID]
	if !ok {
		return nil
	}
	f := &m.frames[idx]
	if f.pin != 0 {
		return fmt.Errorf("%w: %s", ErrPageInUse, pageID)
	}
	return m.flushFrame(idx)
}

// flushFrame writes a dirty frame and clears its flag. Caller holds mu.
func (m *Manager) flushFrame(idx int) error {
	f := &m.frames[idx]
	if !f.dirty {
		return nil
	}
	if err := m.disk.WritePage(f.pageID, f.buf.Bytes()); err != nil {
		return storageErr("flush", f.pageID, err)
	}
	f.markClean()
	m.obs.Observe(Event{Kind: EventFlush, PageID: f.pageID, FrameID: idx, Dirty: true})
	return nil
}

// NewPage allocates a fresh page id and pins a zero-filled frame for it.
// The frame is acquired before the id, so an exhausted pool allocates
// nothing. Ids that are already resident (pages fetched without being
// allocated) are skipped. New pages start dirty so the zeroed bytes reach
// storage.
func (m *Manager) NewPage() (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.acquireFrame()
	if err != nil {
		return nil, err
	}
	pageID, err := m.allocate()
	if err != nil {
		m.restoreFrame(idx)
		return nil, err
	}

	m.commitFrame(idx)
	f := &m.frames[idx]
	f.buf.Zero()
	f.install(pageID, true)
	m.pageTable[pageID] = idx
	m.replacer.Pin(idx)
	m.obs.Observe(Event{Kind: EventNew, PageID: pageID, FrameID: idx, Dirty: true})
	return m.pageOf(idx), nil
}

// allocate asks storage for an id that is not resident. At most one id per
// frame can collide, so len(frames)+1 attempts always suffice against a
// storage that hands out distinct ids. Caller holds mu.
func (m *Manager) allocate() (storage.PageID, error) {
	for i, limit := 0, len(m.frames)+1; i < limit; i++ {
		pageID, err := m.disk.AllocatePage()
		if err != nil {
			return storage.InvalidPageID, storageErr("allocate", storage.InvalidPageID, err)
		}
		if _, taken := m.pageTable[pageID]; !taken {
			return pageID, nil
		}
	}
	return storage.InvalidPageID, fmt.Errorf("%w: allocate: every id offered is already resident", ErrStorage)
}

// DeletePage drops the page from the pool and asks storage to release it.
// A page that is not resident is only released on storage. A pinned page is
// refused with ErrPageInUse and nothing changes.
func (m *Manager) DeletePage(pageID storage.PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.pageTable[pageID]
	if !ok {
		if err := m.disk.DeallocatePage(pageID); err != nil {
			return storageErr("deallocate", pageID, err)
		}
		return nil
	}
	f := &m.frames[idx]
	if f.pin != 0 {
		return fmt.Errorf("%w: %s", ErrPageInUse, pageID)
	}
	if err := m.disk.DeallocatePage(pageID); err != nil {
		return storageErr("deallocate", pageID, err)
	}

	delete(m.pageTable, pageID)
	m.replacer.Pin(idx)
	m.releaseFrame(idx)
	m.obs.Observe(Event{Kind: EventDelete, PageID: pageID, FrameID: idx})
	return nil
}

// FlushAllPages writes back every unpinned dirty page, in ascending page id
// order. Pinned pages are skipped and stay dirty. A failed write does not
// stop the sweep; all failures are returned together.
func (m *Manager) FlushAllPages() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := maps.Keys(m.pageTable)
	slices.Sort(ids)

	var err error
	for _, id := range ids {
		idx := m.pageTable[id]
		if m.frames[idx].pin != 0 {
			continue
		}
		err = multierr.Append(err, m.flushFrame(idx))
	}
	return err
}

func (m *Manager) pageOf(idx int) *Page {
	f := &m.frames[idx]
	return &Page{id: f.pageID, frameID: idx, data: f.buf.Bytes()}
}

// PoolSize is the number of frames.
func (m *Manager) PoolSize() int { return len(m.frames) }

// FreeFrames is the length of the free list.
func (m *Manager) FreeFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.freeList)
}

// Evictable is the number of frames the replacer could hand out.
func (m *Manager) Evictable() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replacer.Size()
}

// PinCount reports the page's pin count and whether it is resident.
func (m *Manager) PinCount(pageID storage.PageID) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.pageTable[pageID]
	if !ok {
		return 0, false
	}
	return int(m.frames[idx].pin), true
}

// IsDirty reports the page's dirty flag and whether it is resident.
func (m *Manager) IsDirty(pageID storage.PageID) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.pageTable[pageID]
	if !ok {
		return false, false
	}
	return m.frames[idx].dirty, true
}

// ResidentPages lists the cached page ids, ascending.
func (m *Manager) ResidentPages() []storage.PageID {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := maps.Keys(m.pageTable)
	slices.Sort(ids)
	return ids
}

// LogManager returns the log attached with WithLogManager, or nil.
func (m *Manager) LogManager() LogManager { return m.log }
