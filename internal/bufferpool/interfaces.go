package bufferpool

import (
	"fmt"
	"strings"
)

// Replacer decides which unpinned frame gives up its page next. It only
// tracks frame indices [0..capacity) and never touches the page table or
// storage.
type Replacer interface {
	// Victim picks an evictable frame, marks it pinned and returns it.
	// ok is false when every tracked frame is pinned.
	Victim() (frameID int, ok bool)
	// Pin removes the frame from eviction candidates. Idempotent.
	Pin(frameID int)
	// Unpin makes the frame an eviction candidate. Idempotent.
	Unpin(frameID int)
	// Size is the number of evictable frames.
	Size() int
}

// LogManager is the write-ahead log the pool is handed at construction.
// No pool operation calls it yet; it is the hook for logging before a dirty
// victim is written back.
type LogManager interface {
	FlushedLSN() uint64
}

// Policy selects a Replacer implementation.
type Policy string

const (
	PolicyLRU   Policy = "lru"
	PolicyClock Policy = "clock"
)

// ParsePolicy accepts the config spelling of a policy, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyLRU, PolicyClock:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// NewReplacer builds the replacer for policy sized for capacity frames.
func NewReplacer(policy Policy, capacity int) (Replacer, error) {
	switch policy {
	case PolicyLRU:
		return NewLRUReplacer(capacity), nil
	case PolicyClock:
		return NewClockReplacer(capacity), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(policy))
	}
}
