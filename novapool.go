// Package novapool opens a buffer pool in front of a configured storage
// backend.
package novapool

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/tuannm99/novapool/internal"
	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/storage"
)

// DB couples a Manager with the DiskManager it owns.
type DB struct {
	Pool *bufferpool.Manager
	disk storage.DiskManager
}

// OpenDiskManager builds the storage backend named by cfg.
func OpenDiskManager(cfg *internal.NovaPoolConfig) (storage.DiskManager, error) {
	switch cfg.Storage.Backend {
	case internal.BackendFile:
		return storage.OpenFileDiskManager(storage.LocalFileSet{
			Dir:  cfg.Storage.Workdir,
			Base: cfg.Storage.Base,
		})
	case internal.BackendLevelDB:
		return storage.OpenLevelDiskManager(filepath.Join(cfg.Storage.Workdir, cfg.Storage.Base+".ldb"), nil)
	case internal.BackendMemory:
		return storage.NewMemDiskManager(), nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.Storage.Backend)
	}
}

// Open validates cfg, opens the storage backend and builds the pool on top.
func Open(cfg *internal.NovaPoolConfig, opts ...bufferpool.Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	disk, err := OpenDiskManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	pool, err := bufferpool.NewWithPolicy(disk, cfg.Policy(), cfg.BufferPool.PoolSize, opts...)
	if err != nil {
		return nil, multierr.Append(err, disk.Close())
	}
	return &DB{Pool: pool, disk: disk}, nil
}

// Close writes back every unpinned dirty page and closes storage. Pages
// still pinned are not written.
func (db *DB) Close() error {
	return multierr.Append(db.Pool.FlushAllPages(), db.disk.Close())
}
