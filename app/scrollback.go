package app

import "gfxport/gos"

const minScrollbackBytes = 256

// Scrollback keeps every printed line in one heap block that only grows.
// Lines are stored newline-terminated; starts indexes them.
//
// Scrollback is owned by the render thread.
type Scrollback struct {
	os      *gos.OS
	buf     []byte
	used    int
	starts  []int
	dropped int
}

// NewScrollback returns an empty scrollback on o's heap.
func NewScrollback(o *gos.OS) *Scrollback {
	return &Scrollback{os: o}
}

// Append stores line. It reports false, and counts the line as dropped,
// when the heap cannot hold it.
func (b *Scrollback) Append(line string) bool {
	need := b.used + len(line) + 1
	if need > len(b.buf) {
		size := max(2*len(b.buf), need, minScrollbackBytes)
		grown := b.os.Realloc(b.buf, b.used, size)
		if grown == nil {
			b.dropped++
			return false
		}
		if b.buf != nil {
			b.os.Free(b.buf)
		}
		b.buf = grown
	}
	b.starts = append(b.starts, b.used)
	copy(b.buf[b.used:], line)
	b.buf[b.used+len(line)] = '\n'
	b.used = need
	return true
}

// Len returns the number of stored lines.
func (b *Scrollback) Len() int { return len(b.starts) }

// Bytes returns the heap bytes held.
func (b *Scrollback) Bytes() int { return len(b.buf) }

// Dropped returns the number of lines Append refused.
func (b *Scrollback) Dropped() int { return b.dropped }

// Line returns line i, oldest first.
func (b *Scrollback) Line(i int) string {
	end := b.used
	if i+1 < len(b.starts) {
		end = b.starts[i+1]
	}
	return string(b.buf[b.starts[i] : end-1])
}

// Tail returns up to the last n lines, oldest first.
func (b *Scrollback) Tail(n int) []string {
	first := max(len(b.starts)-n, 0)
	out := make([]string, 0, len(b.starts)-first)
	for i := first; i < len(b.starts); i++ {
		out = append(out, b.Line(i))
	}
	return out
}

// Release returns the block to the heap and empties the scrollback.
func (b *Scrollback) Release() {
	if b.buf != nil {
		b.os.Free(b.buf)
	}
	b.buf, b.used, b.starts = nil, 0, nil
}
