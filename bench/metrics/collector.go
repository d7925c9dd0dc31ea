// Package metrics samples the Go runtime around benchmark builds.
package metrics

import (
	"runtime"
	"runtime/debug"
)

// MemSample is a point-in-time view of the allocator, reduced to what the
// build reports consume.
type MemSample struct {
	HeapAlloc uint64
	NumGC     uint32
}

// ReadMem samples the allocator state.
func ReadMem() MemSample {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemSample{HeapAlloc: m.HeapAlloc, NumGC: m.NumGC}
}

// GC forces a collection and returns freed memory to the OS, so a following
// ReadMem measures live data rather than allocator slack.
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// GCsSince returns the number of collections between prev and s.
func (s MemSample) GCsSince(prev MemSample) uint32 {
	if s.NumGC < prev.NumGC {
		return 0
	}
	return s.NumGC - prev.NumGC
}
