package parallel

import "runtime"

// DefaultWorkers returns the worker-pool size used when the caller does not
// pick one: one worker per CPU the process may run on, never more than
// GOMAXPROCS and never less than one.
func DefaultWorkers() int {
	procs := runtime.GOMAXPROCS(0)
	if cpus := availableCPUs(); cpus > 0 && cpus < procs {
		procs = cpus
	}
	if procs < 1 {
		return 1
	}
	return procs
}

// ResolveWorkers returns requested when positive, otherwise DefaultWorkers().
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	return DefaultWorkers()
}
