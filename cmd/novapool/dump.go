package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/storage"
)

var DumpCmd = cli.Command{
	Action:    dump,
	Name:      "dump",
	Usage:     "prints the bytes of a page as stored",
	ArgsUsage: "<page-id>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "bytes", Usage: "number of leading bytes to print, 0 for the whole page", Value: 256},
	},
}

func dump(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one page id")
	}
	var raw int32
	if _, err := fmt.Sscan(ctx.Args().First(), &raw); err != nil {
		return fmt.Errorf("invalid page id %q: %w", ctx.Args().First(), err)
	}
	n := ctx.Int("bytes")
	if n <= 0 || n > storage.PageSize {
		n = storage.PageSize
	}

	db, _, err := openDB(ctx)
	if err != nil {
		return err
	}
	err = db.Pool.WithPage(storage.PageID(raw), func(p *bufferpool.Page) (bool, error) {
		fmt.Printf("%s (frame %d)\n", p.ID(), p.FrameID())
		fmt.Print(hex.Dump(p.Data()[:n]))
		return false, nil
	})
	return multierr.Append(err, db.Close())
}
