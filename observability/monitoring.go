package observability

import (
	"log/slog"
	"mood-chat/domain"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Process is the resource usage of the server process itself.
type Process struct {
	PID        int32   `json:"pid"`
	Status     string  `json:"status"`
	RSSBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	Goroutines int     `json:"goroutines"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
}

// Snapshot is what /stats serves.
type Snapshot struct {
	Sessions domain.SessionStats `json:"sessions"`
	Process  Process             `json:"process"`
	At       time.Time           `json:"at"`
}

// Monitor keeps the latest snapshot for readers that must not touch the
// session store, like the HTTP handlers.
type Monitor struct {
	log     *slog.Logger
	mu      sync.RWMutex
	latest  Snapshot
	process *process.Process
}

func NewMonitor(log *slog.Logger) (*Monitor, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Monitor{log: log, process: p}, nil
}

// Update samples the process and stores a new snapshot.
// A failed process sample keeps the previous figures.
func (m *Monitor) Update(sessions domain.SessionStats) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latest.Sessions = sessions
	m.latest.At = time.Now().UTC()
	m.latest.Process = m.sampleProcess(m.latest.Process)
	return m.latest
}

func (m *Monitor) sampleProcess(previous Process) Process {
	current := previous
	current.PID = m.process.Pid

	if memInfo, err := m.process.MemoryInfo(); err != nil {
		m.log.Debug("Failed to read process memory", "error", err)
	} else {
		current.RSSBytes = memInfo.RSS
	}
	if cpu, err := m.process.CPUPercent(); err != nil {
		m.log.Debug("Failed to read process cpu", "error", err)
	} else {
		current.CPUPercent = cpu
	}
	if status, err := m.process.Status(); err == nil {
		current.Status = status
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	current.AllocMemMb = stats.Alloc / 1024 / 1024
	current.NumGC = stats.NumGC
	current.Goroutines = runtime.NumGoroutine()
	return current
}

func (m *Monitor) GetLatest() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
