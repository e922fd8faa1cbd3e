//go:build !debug
// +build !debug

package threadcheck

// In release builds thread-ownership checks compile away entirely; the
// realtime path must not pay for a check it only needs during development.

// MarkAudioThread is a no-op in release builds.
func MarkAudioThread() {}

// AssertAudioThread is a no-op in release builds.
func AssertAudioThread(operation string) {}

// AssertNotAudioThread is a no-op in release builds.
func AssertNotAudioThread(operation string) {}

// Unreachable is a no-op in release builds: the caller is expected to
// degrade gracefully (e.g. BlockArena returning a truncated buffer)
// rather than crash a running audio stream.
func Unreachable(msg string) {}
