package crypto

import "runtime"

// Wipe zeroes every provided buffer. This is best-effort: it keeps the
// buffers live past the writes so the compiler cannot drop them, but copies
// made elsewhere (strings, GC moves) are out of reach.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
