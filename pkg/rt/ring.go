// Package rt provides the cross-thread primitives that connect the
// control/UI thread to the realtime audio thread without blocking or
// allocating on the audio path: a wait-free SPSC ring, a double-buffered
// parameter snapshot, and a per-callback bump arena.
package rt

import "sync/atomic"

// Ring is a bounded wait-free single-producer/single-consumer queue.
//
// Exactly one goroutine may call TryPush and exactly one goroutine may
// call TryPop; using it from more than one producer or consumer is a
// programming error and is not detected at runtime. Capacity is the
// number of usable slots requested by the caller; internally one extra
// slot is kept so a full ring can be distinguished from an empty one
// without a separate counter.
type Ring[T any] struct {
	buf      []T
	writeIdx uint64 // producer-owned, read by consumer via acquire load
	readIdx  uint64 // consumer-owned, read by producer via acquire load
}

// NewRing creates a ring with room for capacity usable elements.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		buf: make([]T, capacity+1),
	}
}

// TryPush attempts to enqueue v. It never blocks and never allocates.
// Returns false if the ring is full. Producer-only.
func (r *Ring[T]) TryPush(v T) bool {
	w := atomic.LoadUint64(&r.writeIdx) // relaxed: only this goroutine writes it
	n := uint64(len(r.buf))
	next := (w + 1) % n
	if next == atomic.LoadUint64(&r.readIdx) { // acquire
		return false
	}
	r.buf[w] = v
	atomic.StoreUint64(&r.writeIdx, next) // release
	return true
}

// TryPop attempts to dequeue the oldest element. It never blocks and
// never allocates. Returns false if the ring is empty. Consumer-only.
func (r *Ring[T]) TryPop() (T, bool) {
	var zero T
	rd := atomic.LoadUint64(&r.readIdx) // relaxed: only this goroutine writes it
	if rd == atomic.LoadUint64(&r.writeIdx) { // acquire
		return zero, false
	}
	v := r.buf[rd]
	n := uint64(len(r.buf))
	atomic.StoreUint64(&r.readIdx, (rd+1)%n) // release
	return v, true
}

// Len returns a snapshot of the number of queued elements. It is racy by
// construction (the indices may move between the two loads) and is meant
// for diagnostics only, never for correctness decisions.
func (r *Ring[T]) Len() int {
	w := atomic.LoadUint64(&r.writeIdx)
	rd := atomic.LoadUint64(&r.readIdx)
	n := uint64(len(r.buf))
	return int((w - rd + n) % n)
}

// Cap returns the number of usable slots (capacity requested by the caller).
func (r *Ring[T]) Cap() int {
	return len(r.buf) - 1
}
