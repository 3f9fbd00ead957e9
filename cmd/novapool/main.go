package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tuannm99/novapool"
	"github.com/tuannm99/novapool/internal"
	"github.com/tuannm99/novapool/internal/bufferpool"
)

// Run using
//  go run ./cmd/novapool <command> <flags>

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file, defaults are used if empty",
	}
	backendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "storage backend: file, leveldb or memory (overrides config)",
	}
	workdirFlag = cli.StringFlag{
		Name:  "workdir",
		Usage: "directory holding the page files (overrides config)",
	}
	poolSizeFlag = cli.IntFlag{
		Name:  "pool-size",
		Usage: "number of frames in the buffer pool (overrides config)",
	}
	replacerFlag = cli.StringFlag{
		Name:  "replacer",
		Usage: "replacement policy: lru or clock (overrides config)",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error (overrides config)",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "novapool",
		Usage: "buffer pool toolbox",
		Flags: []cli.Flag{
			&configFlag,
			&backendFlag,
			&workdirFlag,
			&poolSizeFlag,
			&replacerFlag,
			&logLevelFlag,
		},
		Commands: []*cli.Command{
			&BenchCmd,
			&DumpCmd,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config (or the defaults) and applies flag overrides.
func loadConfig(ctx *cli.Context) (*internal.NovaPoolConfig, error) {
	var (
		cfg *internal.NovaPoolConfig
		err error
	)
	if path := ctx.String(configFlag.Name); path != "" {
		cfg, err = internal.LoadConfig(path)
	} else {
		cfg, err = internal.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(backendFlag.Name) {
		cfg.Storage.Backend = ctx.String(backendFlag.Name)
	}
	if ctx.IsSet(workdirFlag.Name) {
		cfg.Storage.Workdir = ctx.String(workdirFlag.Name)
	}
	if ctx.IsSet(poolSizeFlag.Name) {
		cfg.BufferPool.PoolSize = ctx.Int(poolSizeFlag.Name)
	}
	if ctx.IsSet(replacerFlag.Name) {
		cfg.BufferPool.Replacer = ctx.String(replacerFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = ctx.String(logLevelFlag.Name)
	}
	return cfg, cfg.Validate()
}

// openDB opens the configured pool with a slog observer and a stats counter.
func openDB(ctx *cli.Context) (*novapool.DB, *bufferpool.StatsObserver, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("app", cfg.AppName)

	stats := &bufferpool.StatsObserver{}
	db, err := novapool.Open(cfg, bufferpool.WithObserver(bufferpool.MultiObserver{
		bufferpool.NewSlogObserver(logger),
		stats,
	}))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("novapool: opened",
		"backend", cfg.Storage.Backend,
		"workdir", cfg.Storage.Workdir,
		"pool_size", cfg.BufferPool.PoolSize,
		"replacer", cfg.BufferPool.Replacer,
	)
	return db, stats, nil
}
