package bufferpool

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapool/internal/storage"
)

type recorder struct{ events []Event }

func (r *recorder) Observe(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestObserver_ReceivesLifecycle(t *testing.T) {
	rec := &recorder{}
	stats := &StatsObserver{}
	pool, err := NewWithPolicy(storage.NewMemDiskManager(), PolicyLRU, 1,
		WithObserver(MultiObserver{rec, stats}))
	require.NoError(t, err)

	_, err = pool.FetchPage(1) // miss
	require.NoError(t, err)
	_, err = pool.FetchPage(1) // hit
	require.NoError(t, err)
	require.NoError(t, pool.UnpinPage(1, true))
	require.NoError(t, pool.UnpinPage(1, false))

	p, err := pool.NewPage() // evicts dirty page 1, then new
	require.NoError(t, err)
	require.NoError(t, pool.UnpinPage(p.ID(), false))
	require.NoError(t, pool.FlushPage(p.ID())) // new pages start dirty
	require.NoError(t, pool.DeletePage(p.ID()))

	require.Equal(t, []EventKind{EventMiss, EventHit, EventEvict, EventNew, EventFlush, EventDelete}, rec.kinds())
	require.Equal(t, storage.PageID(1), rec.events[2].PageID)
	require.True(t, rec.events[2].Dirty)

	s := stats.Snapshot()
	require.Equal(t, Stats{Hits: 1, Misses: 1, Evictions: 1, Flushes: 1, News: 1, Deletes: 1}, s)
	require.InDelta(t, 0.5, s.HitRatio(), 1e-9)
}

func TestObserver_NilKeepsNop(t *testing.T) {
	pool := New(storage.NewMemDiskManager(), NewClockReplacer(1), 1, WithObserver(nil))
	require.IsType(t, NopObserver{}, pool.obs)
}

func TestSlogObserver_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogObserver(logger).Observe(Event{Kind: EventEvict, PageID: 4, FrameID: 2, Dirty: true})
	require.Contains(t, buf.String(), "bufferpool: evict")
	require.Contains(t, buf.String(), "page=4")
	require.Contains(t, buf.String(), "dirty=true")

	buf.Reset()
	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogObserver(quiet).Observe(Event{Kind: EventHit})
	require.Empty(t, buf.String())
}

func TestStats_HitRatioEmpty(t *testing.T) {
	require.Zero(t, Stats{}.HitRatio())
	require.Equal(t, "unknown", EventKind(0).String())
}
