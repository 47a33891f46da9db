// Package diag reports the client's own process health for the status
// endpoint and the UI footer.
package diag

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

var startedAt = time.Now()

// Snapshot is one reading of the client process.
type Snapshot struct {
	CPUPercent float64       `json:"cpuPercent"`
	RSSBytes   uint64        `json:"rssBytes"`
	Uptime     time.Duration `json:"uptime"`
	Goroutines int           `json:"goroutines"`
}

// Collect gathers a snapshot. Metrics that cannot be read stay zero; a
// degraded reading is never an error worth surfacing.
func Collect() Snapshot {
	s := Snapshot{
		Uptime:     time.Since(startedAt).Round(time.Second),
		Goroutines: runtime.NumGoroutine(),
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		s.RSSBytes = mem.RSS
	}
	return s
}
