package monitoring

import (
	"os"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemStats is a point-in-time snapshot of host and process resource
// usage, reported by the health endpoint.
type SystemStats struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	ProcessMemoryMB   float64 `json:"processMemoryMb"`
	ProcessCPUPercent float64 `json:"processCpuPercent"`
}

// Snapshot samples resource usage on demand. Sampling failures leave the
// affected fields at zero; liveness reporting never fails a request.
func Snapshot() SystemStats {
	var stats SystemStats

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			stats.ProcessMemoryMB = float64(mi.RSS) / 1024 / 1024
		}
		if cp, err := proc.CPUPercent(); err == nil {
			stats.ProcessCPUPercent = cp
		}
	}

	return stats
}
