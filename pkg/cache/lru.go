package cache

import (
	"container/list"
	"sync"
)

// LRU keeps slot ids in the order they were added. The front is the id
// added longest ago. A reverse index makes Remove O(1).
type LRU struct {
	mu      sync.Mutex
	order   *list.List
	entries map[int]*list.Element
}

func NewLRU(capacity int) *LRU {
	if capacity < 0 {
		capacity = 0
	}
	return &LRU{
		order:   list.New(),
		entries: make(map[int]*list.Element, capacity),
	}
}

// PushBack appends id unless it is already tracked. A repeated push does
// not move the id.
func (l *LRU) PushBack(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[id]; ok {
		return false
	}
	l.entries[id] = l.order.PushBack(id)
	return true
}

// Remove drops id from wherever it sits.
func (l *LRU) Remove(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	elem, ok := l.entries[id]
	if !ok {
		return false
	}
	l.order.Remove(elem)
	delete(l.entries, id)
	return true
}

// PopFront removes and returns the oldest id.
func (l *LRU) PopFront() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	elem := l.order.Front()
	if elem == nil {
		return -1, false
	}
	id := l.order.Remove(elem).(int)
	delete(l.entries, id)
	return id, true
}

func (l *LRU) Contains(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[id]
	return ok
}

func (l *LRU) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

// Items returns the ids from oldest to newest.
func (l *LRU) Items() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, 0, l.order.Len())
	for e := l.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(int))
	}
	return out
}
