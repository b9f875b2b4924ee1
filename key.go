package grid

import "sync/atomic"

// Key is an opaque handle identifying one owner of scheduled work.
// Items, debouncers, and animations each mint their own Key and use it
// consistently as both a ticker key and an emitter queue key.
type Key int64

var keyCounter atomic.Int64

// NextKey mints a new unique Key. Keys are never reused within a process.
func NextKey() Key {
	return Key(keyCounter.Add(1))
}
