package bufferpool

import "errors"

var (
	ErrPoolExhausted   = errors.New("bufferpool: no free frame available (all pinned)")
	ErrPageNotResident = errors.New("bufferpool: page is not resident")
	ErrPageInUse       = errors.New("bufferpool: page is pinned")
	ErrDoubleUnpin     = errors.New("bufferpool: page is not pinned")
	ErrStorage         = errors.New("bufferpool: storage error")
	ErrInvalidPageID   = errors.New("bufferpool: invalid page id")
	ErrUnknownPolicy   = errors.New("bufferpool: unknown replacement policy")
)
