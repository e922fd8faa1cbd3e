//go:build debug
// +build debug

// Package threadcheck provides zero-cost-in-release ownership assertions
// for the two-thread model in §5: exactly one control/UI thread and one
// realtime audio thread may touch a given piece of state. Debug builds
// (-tags debug) record which goroutine is the audio thread and panic on
// violation; release builds compile the same calls down to no-ops.
package threadcheck

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

var audioThreadID int64 = -1

// goroutineID extracts the calling goroutine's id from its stack trace
// header ("goroutine 123 [running]:"). It is a debug-only diagnostic,
// never consulted on a correctness path in release builds.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	i := bytes.IndexByte(buf, ' ')
	if i < 0 {
		return 0
	}
	id, _ := strconv.ParseUint(string(buf[:i]), 10, 64)
	return id
}

// MarkAudioThread records the calling goroutine as the audio thread for
// the remainder of the process. Call once, at the start of the realtime
// callback's first invocation.
func MarkAudioThread() {
	atomic.StoreInt64(&audioThreadID, int64(goroutineID()))
}

// AssertAudioThread panics if the caller is not the recorded audio thread.
func AssertAudioThread(operation string) {
	id := atomic.LoadInt64(&audioThreadID)
	if id == -1 {
		return // not yet marked; nothing to check against
	}
	if int64(goroutineID()) != id {
		panic(fmt.Sprintf("threadcheck: %s called off the audio thread", operation))
	}
}

// AssertNotAudioThread panics if the caller is the recorded audio thread.
func AssertNotAudioThread(operation string) {
	id := atomic.LoadInt64(&audioThreadID)
	if id != -1 && int64(goroutineID()) == id {
		panic(fmt.Sprintf("threadcheck: %s must not run on the audio thread", operation))
	}
}

// Unreachable panics with msg. Used for conditions the system design
// treats as impossible in a correctly sized build (e.g. arena overflow).
func Unreachable(msg string) {
	panic("threadcheck: unreachable: " + msg)
}
