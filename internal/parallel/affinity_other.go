//go:build !linux

package parallel

import "runtime"

func availableCPUs() int {
	return runtime.NumCPU()
}
