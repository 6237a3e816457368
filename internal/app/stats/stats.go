package stats

//go:generate mockgen -source=stats.go -destination=stats_mock.go -package=stats

import (
	"math"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"lens/internal/config/logger"
)

// Snapshot contains resource usage of the running daemon
type Snapshot struct {
	PID        int           `json:"pid"`
	CPUPercent float64       `json:"cpu_percent"`
	MemoryRSS  uint64        `json:"memory_rss"`
	Goroutines int           `json:"goroutines"`
	Uptime     time.Duration `json:"uptime"`
}

// Collector probes the daemon's own process for status reporting
type Collector interface {
	Snapshot() Snapshot
}

type collector struct {
	pid       int
	startedAt time.Time
	log       logger.Logger
}

// NewCollector creates a collector bound to the current process
func NewCollector(log logger.Logger) Collector {
	return &collector{
		pid:       os.Getpid(),
		startedAt: time.Now(),
		log:       log.WithComponent("STATS"),
	}
}

// Snapshot returns current resource usage. Probe failures degrade to zero
// values; status must stay answerable on platforms gopsutil cannot read.
func (c *collector) Snapshot() Snapshot {
	snap := Snapshot{
		PID:        c.pid,
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(c.startedAt),
	}

	if c.pid <= 0 || c.pid > math.MaxInt32 {
		return snap
	}

	proc, err := process.NewProcess(int32(c.pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		c.log.Debug().Err(err).Msg("Process self-probe unavailable")

		return snap
	}

	if cpu, err := proc.CPUPercent(); err == nil {
		snap.CPUPercent = cpu
	}

	if mem, err := proc.MemoryInfo(); err == nil {
		snap.MemoryRSS = mem.RSS
	}

	return snap
}
