package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of runtime memory statistics.
type MemorySnapshot struct {
	HeapAlloc    uint64
	Sys          uint64
	TotalAlloc   uint64
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// ReadMemory returns the current runtime memory statistics.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// AllocDelta is what happened on the heap between two snapshots.
type AllocDelta struct {
	Bytes   uint64
	Objects uint64
	GCs     uint32
}

// Since returns the allocations made between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) AllocDelta {
	return AllocDelta{
		Bytes:   s.TotalAlloc - before.TotalAlloc,
		Objects: s.Mallocs - before.Mallocs,
		GCs:     s.NumGC - before.NumGC,
	}
}
