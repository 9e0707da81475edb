// Package sysmon samples system-wide CPU and memory usage.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one system-wide snapshot.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample returns the CPU usage since the previous call to Sample and the
// current memory usage. Fields are zero when the platform cannot report them.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// LogicalCores returns the number of logical CPUs reported by the OS,
// falling back to runtime.NumCPU.
func LogicalCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// PhysicalCores returns the number of physical cores, or 0 when unknown.
func PhysicalCores() int {
	n, err := cpu.Counts(false)
	if err != nil {
		return 0
	}
	return n
}

// CPUModel returns the model name of the first CPU, or "".
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return ""
	}
	return infos[0].ModelName
}

// CPUMeter measures the system-wide CPU utilization over an interval from
// cumulative CPU times. Unlike Sample it keeps its own reference point, so
// several meters can run at once.
type CPUMeter struct {
	start cpu.TimesStat
	ok    bool
}

// StartCPUMeter records the current CPU times.
func StartCPUMeter() *CPUMeter {
	m := &CPUMeter{}
	m.start, m.ok = readTimes()
	return m
}

// Percent returns the share of CPU time spent busy since the meter was
// started, from 0 to 100. It returns 0 when times are unavailable.
func (m *CPUMeter) Percent() float64 {
	if !m.ok {
		return 0
	}
	now, ok := readTimes()
	if !ok {
		return 0
	}
	return busyPercent(m.start, now)
}

func readTimes() (cpu.TimesStat, bool) {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return cpu.TimesStat{}, false
	}
	return times[0], true
}

func total(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func busyPercent(a, b cpu.TimesStat) float64 {
	dTotal := total(b) - total(a)
	if dTotal <= 0 {
		return 0
	}
	dIdle := (b.Idle + b.Iowait) - (a.Idle + a.Iowait)
	pct := (dTotal - dIdle) / dTotal * 100
	return min(max(pct, 0), 100)
}
