package storage

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

var _ DiskManager = (*MemDiskManager)(nil)

// MemStats counts calls made against a MemDiskManager.
type MemStats struct {
	Reads         int
	Writes        int
	Allocations   int
	Deallocations int
}

// MemDiskManager keeps pages in a map. It is meant for tests and for the
// "memory" backend; nothing survives Close.
type MemDiskManager struct {
	mu     sync.Mutex
	pages  map[PageID]*Buffer
	writes map[PageID]int
	next   PageID
	free   []PageID
	stats  MemStats
}

func NewMemDiskManager() *MemDiskManager {
	return &MemDiskManager{
		pages:  make(map[PageID]*Buffer),
		writes: make(map[PageID]int),
	}
}

func (m *MemDiskManager) ReadPage(id PageID, dst []byte) error {
	if err := checkPage(id, dst); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Reads++
	if b, ok := m.pages[id]; ok {
		copy(dst, b[:])
		return nil
	}
	clear(dst)
	return nil
}

func (m *MemDiskManager) WritePage(id PageID, src []byte) error {
	if err := checkPage(id, src); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Writes++
	m.writes[id]++
	b, ok := m.pages[id]
	if !ok {
		b = new(Buffer)
		m.pages[id] = b
	}
	copy(b[:], src)
	if id >= m.next {
		m.next = id + 1
	}
	return nil
}

func (m *MemDiskManager) AllocatePage() (PageID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Allocations++
	if len(m.free) > 0 {
		id := m.free[0]
		m.free = slices.Delete(m.free, 0, 1)
		return id, nil
	}
	id := m.next
	m.next++
	return id, nil
}

func (m *MemDiskManager) DeallocatePage(id PageID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPageID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Deallocations++
	delete(m.pages, id)
	if id >= m.next {
		return nil
	}
	if pos, found := slices.BinarySearch(m.free, id); !found {
		m.free = slices.Insert(m.free, pos, id)
	}
	return nil
}

func (m *MemDiskManager) Close() error { return nil }

// Stats returns a copy of the call counters.
func (m *MemDiskManager) Stats() MemStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// WritesOf returns how many times the page was written.
func (m *MemDiskManager) WritesOf(id PageID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[id]
}

// Snapshot returns a copy of the stored bytes of a page, or nil.
func (m *MemDiskManager) Snapshot(id PageID) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.pages[id]
	if !ok {
		return nil
	}
	return slices.Clone(b[:])
}
