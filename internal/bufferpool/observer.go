package bufferpool

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/tuannm99/novapool/internal/storage"
)

// EventKind enumerates what the pool reports to its Observer.
type EventKind uint8

const (
	EventHit EventKind = iota + 1
	EventMiss
	EventEvict
	EventFlush
	EventNew
	EventDelete
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventEvict:
		return "evict"
	case EventFlush:
		return "flush"
	case EventNew:
		return "new"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event describes one state change. For EventEvict, PageID is the page that
// left the frame and Dirty tells whether it was written back.
type Event struct {
	Kind    EventKind
	PageID  storage.PageID
	FrameID int
	Dirty   bool
}

// Observer receives events while the manager holds its lock, so
// implementations must be fast and must not call back into the pool.
type Observer interface {
	Observe(Event)
}

// NopObserver drops every event.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}

// SlogObserver logs events at debug level.
type SlogObserver struct {
	logger *slog.Logger
}

func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) Observe(e Event) {
	if !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.logger.Debug("bufferpool: "+e.Kind.String(),
		"page", int32(e.PageID),
		"frame", e.FrameID,
		"dirty", e.Dirty,
	)
}

// Stats is a point-in-time copy of StatsObserver counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Flushes   uint64
	News      uint64
	Deletes   uint64
}

// HitRatio is hits / (hits + misses), or 0 before any fetch.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// StatsObserver counts events.
type StatsObserver struct {
	hits, misses, evictions, flushes, news, deletes atomic.Uint64
}

func (o *StatsObserver) Observe(e Event) {
	switch e.Kind {
	case EventHit:
		o.hits.Add(1)
	case EventMiss:
		o.misses.Add(1)
	case EventEvict:
		o.evictions.Add(1)
	case EventFlush:
		o.flushes.Add(1)
	case EventNew:
		o.news.Add(1)
	case EventDelete:
		o.deletes.Add(1)
	}
}

func (o *StatsObserver) Snapshot() Stats {
	return Stats{
		Hits:      o.hits.Load(),
		Misses:    o.misses.Load(),
		Evictions: o.evictions.Load(),
		Flushes:   o.flushes.Load(),
		News:      o.news.Load(),
		Deletes:   o.deletes.Load(),
	}
}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}
