package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/storage"
)

var BenchCmd = cli.Command{
	Action: bench,
	Name:   "bench",
	Usage:  "runs a random read/write workload against the pool",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "pages", Usage: "number of distinct pages", Value: 1024},
		&cli.IntFlag{Name: "workers", Usage: "concurrent workers", Value: 8},
		&cli.IntFlag{Name: "ops", Usage: "operations per worker", Value: 10000},
		&cli.Float64Flag{Name: "write-ratio", Usage: "share of operations that modify the page", Value: 0.2},
		&cli.Int64Flag{Name: "seed", Usage: "random seed", Value: 1},
	},
}

func bench(ctx *cli.Context) error {
	numPages := ctx.Int("pages")
	if numPages <= 0 {
		return fmt.Errorf("--pages must be positive, got %d", numPages)
	}
	if w := ctx.Int("workers"); w <= 0 {
		return fmt.Errorf("--workers must be positive, got %d", w)
	}

	db, stats, err := openDB(ctx)
	if err != nil {
		return err
	}

	ids := make([]storage.PageID, 0, numPages)
	for i := 0; i < numPages; i++ {
		g, err := db.Pool.NewPageGuard()
		if err != nil {
			return multierr.Append(fmt.Errorf("create page %d: %w", i, err), db.Close())
		}
		ids = append(ids, g.ID())
		if err := g.Release(); err != nil {
			return multierr.Append(err, db.Close())
		}
	}

	var (
		wg        conc.WaitGroup
		exhausted atomic.Uint64
		failures  atomic.Uint64
		ops       = ctx.Int("ops")
		ratio     = ctx.Float64("write-ratio")
		seed      = ctx.Int64("seed")
	)
	start := time.Now()
	for w := 0; w < ctx.Int("workers"); w++ {
		rng := rand.New(rand.NewSource(seed + int64(w)))
		wg.Go(func() {
			for i := 0; i < ops; i++ {
				id := ids[rng.Intn(len(ids))]
				write := rng.Float64() < ratio
				err := db.Pool.WithPage(id, func(p *bufferpool.Page) (bool, error) {
					if write {
						n := binary.LittleEndian.Uint64(p.Data())
						binary.LittleEndian.PutUint64(p.Data(), n+1)
					}
					return write, nil
				})
				switch {
				case errors.Is(err, bufferpool.ErrPoolExhausted):
					exhausted.Add(1)
				case err != nil:
					failures.Add(1)
				}
			}
		})
	}
	wg.Wait()
	elapsed := time.Since(start)

	s := stats.Snapshot()
	fmt.Printf("ops:        %d in %v\n", ops*ctx.Int("workers"), elapsed)
	fmt.Printf("hits:       %d\n", s.Hits)
	fmt.Printf("misses:     %d\n", s.Misses)
	fmt.Printf("hit ratio:  %.3f\n", s.HitRatio())
	fmt.Printf("evictions:  %d\n", s.Evictions)
	fmt.Printf("exhausted:  %d\n", exhausted.Load())
	fmt.Printf("failures:   %d\n", failures.Load())

	return db.Close()
}
