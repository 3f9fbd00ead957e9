package bufferpool

import "github.com/tuannm99/novapool/pkg/cache"

var _ Replacer = (*LRUReplacer)(nil)

// LRUReplacer evicts the frame that was unpinned longest ago. A repeated
// Unpin is not an access and does not move the frame.
type LRUReplacer struct {
	capacity int
	order    *cache.LRU // guarded by its own mutex
}

func NewLRUReplacer(capacity int) *LRUReplacer {
	return &LRUReplacer{
		capacity: capacity,
		order:    cache.NewLRU(capacity),
	}
}

func (r *LRUReplacer) Victim() (int, bool) {
	return r.order.PopFront()
}

func (r *LRUReplacer) Pin(frameID int) {
	r.order.Remove(frameID)
}

func (r *LRUReplacer) Unpin(frameID int) {
	if frameID < 0 || frameID >= r.capacity {
		return
	}
	r.order.PushBack(frameID)
}

func (r *LRUReplacer) Size() int {
	return r.order.Len()
}
