package xconn

import "fmt"

// RingBuffer is a fixed-capacity byte queue: bytes are appended at the tail
// by Write, inspected without removal by Peek, and removed from the head by
// Advance. A connection's inbound buffer that reports Full simply isn't
// re-armed for reading until Advance frees room: no bytes are ever dropped.
type RingBuffer struct {
	buf   []byte
	head  int
	tail  int
	count int
}

// NewRingBuffer allocates a ring buffer of the given capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]byte, capacity)}
}

// Len returns the number of bytes currently buffered.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer's total capacity.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Free returns the number of bytes that can still be written.
func (r *RingBuffer) Free() int { return len(r.buf) - r.count }

// Full reports whether the buffer has no room left; the read side should
// stop being armed for more input until Advance makes room.
func (r *RingBuffer) Full() bool { return r.count == len(r.buf) }

// Write appends p to the tail, returning an error if it would overflow
// capacity; callers are expected to check Free before reading into the
// buffer rather than relying on this as their only guard.
func (r *RingBuffer) Write(p []byte) (int, error) {
	if len(p) > r.Free() {
		return 0, fmt.Errorf("xconn: ring buffer overflow: %d bytes, %d free", len(p), r.Free())
	}
	for _, b := range p {
		r.buf[r.tail] = b
		r.tail = (r.tail + 1) % len(r.buf)
	}
	r.count += len(p)
	return len(p), nil
}

// Peek returns the first n buffered bytes without removing them, as a
// contiguous copy (the ring may wrap internally; callers never see that).
func (r *RingBuffer) Peek(n int) []byte {
	if n > r.count {
		n = r.count
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// PeekAll returns every buffered byte without removing them.
func (r *RingBuffer) PeekAll() []byte { return r.Peek(r.count) }

// Advance removes n bytes from the head, the amount the parser driver or
// the write-out path has confirmed it consumed or sent.
func (r *RingBuffer) Advance(n int) {
	if n > r.count {
		n = r.count
	}
	r.head = (r.head + n) % len(r.buf)
	r.count -= n
}

// Patch overwrites len(b) already-buffered bytes starting offset bytes
// past the head, without changing Len or Free. Used to rewrite a message
// in place before it's forwarded, e.g. forcing a QueryExtension reply's
// present flag false.
func (r *RingBuffer) Patch(offset int, b []byte) {
	for i, v := range b {
		r.buf[(r.head+offset+i)%len(r.buf)] = v
	}
}
