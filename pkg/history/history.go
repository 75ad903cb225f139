// Package history keeps the zoom path as a bounded cursor stack.
package history

import (
	"errors"
	"fmt"
)

var (
	// ErrHistoryExhausted is returned by Push when the stack is at capacity under Reject.
	ErrHistoryExhausted = errors.New("history exhausted")
	// ErrAlreadyAtRoot is returned by Undo at the first entry.
	ErrAlreadyAtRoot = errors.New("already at original view")
	// ErrNothingToRedo is returned by Redo at the newest entry.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// An Overflow policy decides what Push does at capacity.
type Overflow int

const (
	// Reject refuses the push.
	Reject Overflow = iota
	// Evict drops the oldest entry to make room.
	Evict
)

func (o Overflow) String() string {
	switch o {
	case Reject:
		return "reject"
	case Evict:
		return "evict"
	default:
		return fmt.Sprintf("Overflow(%d)", int(o))
	}
}

// ParseOverflow accepts "reject" or "evict".
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "reject":
		return Reject, nil
	case "evict":
		return Evict, nil
	default:
		return 0, fmt.Errorf("unknown history overflow %q, want reject or evict", s)
	}
}

// History is an ordered list of states with a cursor on the one currently shown.
//
// Entries after the cursor stay available to Redo until the next Push replaces them.
type History[T any] struct {
	entries  []T
	cursor   int
	capacity int
	overflow Overflow
}

// New creates a history holding only root.
func New[T any](capacity int, overflow Overflow, root T) (*History[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("history capacity %d, must be at least 1", capacity)
	}
	h := &History[T]{capacity: capacity, overflow: overflow}
	h.Reset(root)
	return h, nil
}

// Reset discards every entry and starts over from root.
func (h *History[T]) Reset(root T) {
	h.entries = append(h.entries[:0:0], root)
	h.cursor = 0
}

// CanPush reports whether Push would succeed.
func (h *History[T]) CanPush() bool {
	return h.overflow == Evict || h.cursor+1 < h.capacity
}

// Push writes state after the cursor and moves the cursor onto it.
func (h *History[T]) Push(state T) error {
	if !h.CanPush() {
		return fmt.Errorf("%w: %d entries", ErrHistoryExhausted, h.capacity)
	}

	h.entries = h.entries[:h.cursor+1]
	if len(h.entries) == h.capacity {
		var zero T
		h.entries[0] = zero
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, state)
	h.cursor = len(h.entries) - 1

	return nil
}

// Undo moves the cursor back one entry and returns it.
func (h *History[T]) Undo() (T, error) {
	if h.cursor == 0 {
		var zero T
		return zero, ErrAlreadyAtRoot
	}
	h.cursor--
	return h.entries[h.cursor], nil
}

// Redo moves the cursor forward over an entry left behind by Undo.
func (h *History[T]) Redo() (T, error) {
	if h.cursor+1 >= len(h.entries) {
		var zero T
		return zero, ErrNothingToRedo
	}
	h.cursor++
	return h.entries[h.cursor], nil
}

// Current returns the entry under the cursor.
func (h *History[T]) Current() T {
	return h.entries[h.cursor]
}

// Cursor is the index of the current entry.
func (h *History[T]) Cursor() int {
	return h.cursor
}

// Len is the number of stored entries, including those ahead of the cursor.
func (h *History[T]) Len() int {
	return len(h.entries)
}

func (h *History[T]) Capacity() int {
	return h.capacity
}
