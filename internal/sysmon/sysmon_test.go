package sysmon

import (
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestLogicalCores(t *testing.T) {
	if n := LogicalCores(); n < 1 {
		t.Errorf("LogicalCores() = %d, want >= 1", n)
	}
	if p := PhysicalCores(); p < 0 {
		t.Errorf("PhysicalCores() = %d", p)
	}
}

func TestCPUMeter_Range(t *testing.T) {
	m := StartCPUMeter()
	x := 0.0
	for i := range 1_000_000 {
		x += 1 / float64(i+1)
	}
	_ = x
	if pct := m.Percent(); pct < 0 || pct > 100 {
		t.Errorf("Percent() = %f, out of range", pct)
	}
}

func TestBusyPercent(t *testing.T) {
	t.Parallel()
	a := cpu.TimesStat{User: 10, System: 5, Idle: 85}
	tests := []struct {
		name string
		b    cpu.TimesStat
		want float64
	}{
		{"half busy", cpu.TimesStat{User: 20, System: 10, Idle: 100}, 50},
		{"idle", cpu.TimesStat{User: 10, System: 5, Idle: 95}, 0},
		{"fully busy", cpu.TimesStat{User: 30, System: 5, Idle: 85}, 100},
		{"iowait counts as idle", cpu.TimesStat{User: 10, System: 5, Idle: 90, Iowait: 5}, 0},
		{"no elapsed time", a, 0},
	}
	for _, tt := range tests {
		if got := busyPercent(a, tt.b); got != tt.want {
			t.Errorf("%s: busyPercent = %v, want %v", tt.name, got, tt.want)
		}
	}
}
