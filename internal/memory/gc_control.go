package memory

import (
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode selects how the collector is handled during timed runs.
type GCMode string

const (
	// GCModeAuto pauses the collector for inputs of at least GCAutoThreshold elements.
	GCModeAuto GCMode = "auto"
	// GCModeAggressive always collects once and pauses the collector.
	GCModeAggressive GCMode = "aggressive"
	// GCModeDisabled leaves the collector alone.
	GCModeDisabled GCMode = "disabled"
)

// GCAutoThreshold is the smallest input length for which auto mode acts.
const GCAutoThreshold = 1_000_000

// memoryLimitFactor bounds the heap while the collector is off, as a
// multiple of the memory obtained from the OS when Begin ran.
const memoryLimitFactor = 3

// GCController pauses the garbage collector between Begin and End so that a
// collection never lands inside a timed run. A soft memory limit stays in
// place meanwhile; the runtime still collects if the heap grows past it.
type GCController struct {
	mode   GCMode
	active bool
	logger zerolog.Logger

	prevPercent int
	prevLimit   int64
	start, end  runtime.MemStats
}

// GCStats is the allocation and collection delta between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController returns a controller for mode and an input of n elements.
// Unknown modes behave like GCModeDisabled.
func NewGCController(mode string, n int) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = n >= GCAutoThreshold
	}
	return gc
}

// SetLogger sets the logger receiving debug events.
func (gc *GCController) SetLogger(l zerolog.Logger) { gc.logger = l }

// Active reports whether Begin will touch the collector.
func (gc *GCController) Active() bool { return gc.active }

// Mode returns the configured mode.
func (gc *GCController) Mode() GCMode { return gc.mode }

// Begin pauses the collector. In aggressive mode a full collection runs
// first so every strategy starts from a compact heap.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	if gc.mode == GCModeAggressive {
		runtime.GC()
	}
	runtime.ReadMemStats(&gc.start)
	gc.prevPercent = debug.SetGCPercent(-1)
	gc.prevLimit = debug.SetMemoryLimit(-1)
	if limit := int64(gc.start.Sys) * memoryLimitFactor; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc paused")
}

// End restores the collector settings saved by Begin and runs a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.end)
	debug.SetGCPercent(gc.prevPercent)
	debug.SetMemoryLimit(gc.prevLimit)
	runtime.GC()

	s := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("total_alloc_bytes", s.TotalAlloc).
		Uint32("gc_cycles", s.NumGC).
		Msg("gc restored")
}

// Stats returns the delta recorded between Begin and End. It is zero when
// the controller is inactive.
func (gc *GCController) Stats() GCStats {
	if !gc.active {
		return GCStats{}
	}
	return GCStats{
		HeapAlloc:    gc.end.HeapAlloc,
		TotalAlloc:   gc.end.TotalAlloc - gc.start.TotalAlloc,
		NumGC:        gc.end.NumGC - gc.start.NumGC,
		PauseTotalNs: gc.end.PauseTotalNs - gc.start.PauseTotalNs,
	}
}
