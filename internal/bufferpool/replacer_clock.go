package bufferpool

import (
	"sync"

	"github.com/tuannm99/novapool/pkg/clockx"
)

var _ Replacer = (*ClockReplacer)(nil)

// ClockReplacer approximates LRU with a circular scan over reference bits.
type ClockReplacer struct {
	mu sync.Mutex
	c  *clockx.Clock
}

func NewClockReplacer(capacity int) *ClockReplacer {
	return &ClockReplacer{c: clockx.New(capacity)}
}

func (r *ClockReplacer) Victim() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c.Evict()
}

func (r *ClockReplacer) Pin(frameID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.c.Pin(frameID)
}

func (r *ClockReplacer) Unpin(frameID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.c.Unpin(frameID)
}

func (r *ClockReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c.Size()
}
