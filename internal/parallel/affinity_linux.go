//go:build linux

package parallel

import "golang.org/x/sys/unix"

// availableCPUs reports the number of CPUs in the process affinity mask,
// which is narrower than runtime.NumCPU under taskset or cpusets.
// It returns 0 when the mask cannot be read.
func availableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}
