package bufferpool

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapool/internal/storage"
)

// Each worker owns a disjoint range of pages and keeps a counter in the
// first bytes. Whatever the interleaving, every counter must survive
// eviction and come back with the value its owner last wrote.
func TestPool_ConcurrentWorkersKeepTheirWrites(t *testing.T) {
	for _, policy := range policies {
		t.Run(string(policy), func(t *testing.T) {
			pool, _ := newTestPool(t, policy, 8)

			const (
				workers        = 6
				pagesPerWorker = 4
				rounds         = 200
			)

			var wg conc.WaitGroup
			for w := 0; w < workers; w++ {
				w := w
				wg.Go(func() {
					rng := rand.New(rand.NewSource(int64(w)))
					counts := make([]uint64, pagesPerWorker)
					for i := 0; i < rounds; i++ {
						slot := rng.Intn(pagesPerWorker)
						id := storage.PageID(w*pagesPerWorker + slot)
						err := pool.WithPage(id, func(p *Page) (bool, error) {
							got := binary.LittleEndian.Uint64(p.Data())
							if got != counts[slot] {
								return false, errors.New("lost update")
							}
							counts[slot]++
							binary.LittleEndian.PutUint64(p.Data(), counts[slot])
							return true, nil
						})
						if errors.Is(err, ErrPoolExhausted) {
							continue
						}
						if err != nil {
							t.Errorf("worker %d page %d: %v", w, id, err)
							return
						}
					}
				})
			}
			wg.Wait()

			checkInvariants(t, pool)
			require.NoError(t, pool.FlushAllPages())
		})
	}
}
