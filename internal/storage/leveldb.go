package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Key space of the LevelDB backend. Ids are big-endian so that iteration
// order matches numeric order.
const (
	ldbPagePrefix byte = 'p'
	ldbFreePrefix byte = 'f'
)

var ldbNextKey = []byte("m/next")

var _ DiskManager = (*LevelDiskManager)(nil)

// LevelDiskManager stores each page as one LevelDB value.
type LevelDiskManager struct {
	db *leveldb.DB

	allocMu sync.Mutex // serializes the allocation counter and free ids
}

// OpenLevelDiskManager opens (or creates) a LevelDB database at path.
func OpenLevelDiskManager(path string, options *opt.Options) (*LevelDiskManager, error) {
	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("storage: open leveldb %s: %w", path, err)
	}
	return &LevelDiskManager{db: db}, nil
}

func ldbKey(prefix byte, id PageID) []byte {
	k := make([]byte, 5)
	k[0] = prefix
	binary.BigEndian.PutUint32(k[1:], uint32(id))
	return k
}

func (l *LevelDiskManager) ReadPage(id PageID, dst []byte) error {
	if err := checkPage(id, dst); err != nil {
		return err
	}
	val, err := l.db.Get(ldbKey(ldbPagePrefix, id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		clear(dst)
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: read %s: %w", id, err)
	}
	n := copy(dst, val)
	clear(dst[n:])
	return nil
}

func (l *LevelDiskManager) WritePage(id PageID, src []byte) error {
	if err := checkPage(id, src); err != nil {
		return err
	}
	if err := l.db.Put(ldbKey(ldbPagePrefix, id), src, nil); err != nil {
		return fmt.Errorf("storage: write %s: %w", id, err)
	}
	return nil
}

// AllocatePage reuses the lowest released id, otherwise bumps the persisted
// counter. Both updates are synced before the id is returned.
func (l *LevelDiskManager) AllocatePage() (PageID, error) {
	l.allocMu.Lock()
	defer l.allocMu.Unlock()

	iter := l.db.NewIterator(util.BytesPrefix([]byte{ldbFreePrefix}), nil)
	if iter.First() {
		id := PageID(binary.BigEndian.Uint32(iter.Key()[1:]))
		iter.Release()
		if err := l.db.Delete(ldbKey(ldbFreePrefix, id), &opt.WriteOptions{Sync: true}); err != nil {
			return InvalidPageID, fmt.Errorf("storage: reuse %s: %w", id, err)
		}
		return id, nil
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return InvalidPageID, fmt.Errorf("storage: scan free ids: %w", err)
	}

	next, err := l.nextID()
	if err != nil {
		return InvalidPageID, err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(next+1))
	if err := l.db.Put(ldbNextKey, buf[:], &opt.WriteOptions{Sync: true}); err != nil {
		return InvalidPageID, fmt.Errorf("storage: allocate: %w", err)
	}
	return next, nil
}

func (l *LevelDiskManager) nextID() (PageID, error) {
	val, err := l.db.Get(ldbNextKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return InvalidPageID, fmt.Errorf("storage: read allocation counter: %w", err)
	}
	return PageID(binary.BigEndian.Uint32(val)), nil
}

func (l *LevelDiskManager) DeallocatePage(id PageID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPageID, id)
	}
	l.allocMu.Lock()
	defer l.allocMu.Unlock()

	next, err := l.nextID()
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Delete(ldbKey(ldbPagePrefix, id))
	if id < next {
		batch.Put(ldbKey(ldbFreePrefix, id), nil)
	}
	if err := l.db.Write(batch, nil); err != nil {
		return fmt.Errorf("storage: deallocate %s: %w", id, err)
	}
	return nil
}

func (l *LevelDiskManager) Close() error {
	return l.db.Close()
}
