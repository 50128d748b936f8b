package navigator

// Buffer accumulates typed runes. The committed prefix belongs to menus
// already descended into and cannot be erased by Backspace.
type Buffer struct {
	runes     []rune
	committed int
}

// NewBuffer returns a buffer holding seed.
func NewBuffer(seed string) *Buffer {
	return &Buffer{runes: []rune(seed)}
}

// Push appends r.
func (b *Buffer) Push(r rune) { b.runes = append(b.runes, r) }

// Backspace removes the last uncommitted rune and reports whether one was removed.
func (b *Buffer) Backspace() bool {
	if len(b.runes) <= b.committed {
		return false
	}
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

// Commit marks the first offset runes as consumed by navigation.
func (b *Buffer) Commit(offset int) {
	b.committed = min(max(offset, 0), len(b.runes))
}

// Reset empties the buffer and clears the committed offset.
func (b *Buffer) Reset() {
	b.runes = b.runes[:0]
	b.committed = 0
}

// Runes returns the full buffer. Callers must not modify it.
func (b *Buffer) Runes() []rune { return b.runes }

// Pending returns the runes typed since the last commit.
func (b *Buffer) Pending() []rune { return b.runes[b.committed:] }

// Committed returns the committed offset.
func (b *Buffer) Committed() int { return b.committed }

// Len returns the number of runes held.
func (b *Buffer) Len() int { return len(b.runes) }
