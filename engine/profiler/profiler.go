package profiler

import (
	"runtime"
	"time"

	"github.com/charmbracelet/log"
)

// Stats is the cost of one measured span.
type Stats struct {
	Duration time.Duration

	// Allocs and AllocBytes are heap allocations made during the span (TotalAlloc/Mallocs deltas).
	Allocs     uint64
	AllocBytes uint64

	// GCCount is the number of collections that completed during the span; MaxPause is the longest of them.
	GCCount  uint32
	MaxPause time.Duration
}

// Profiler measures wall time, heap churn and GC activity between Start and Stop.
// A Profiler is not safe for concurrent use.
type Profiler struct {
	start       time.Time
	memStats    runtime.MemStats
	lastGCCount uint32
	lastMallocs uint64
	lastAlloc   uint64
	running     bool
}

// NewProfiler creates a new Profiler.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Start begins a measurement, discarding any measurement in progress.
func (p *Profiler) Start() {
	runtime.ReadMemStats(&p.memStats)
	p.lastGCCount = p.memStats.NumGC
	p.lastMallocs = p.memStats.Mallocs
	p.lastAlloc = p.memStats.TotalAlloc
	p.running = true
	p.start = time.Now()
}

// Stop ends the measurement begun by Start.
// Calling Stop without a matching Start returns zero Stats.
//
// Returns:
//   - Stats: the cost of the span
func (p *Profiler) Stop() Stats {
	elapsed := time.Since(p.start)
	if !p.running {
		return Stats{}
	}
	p.running = false

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		Duration:   elapsed,
		Allocs:     p.memStats.Mallocs - p.lastMallocs,
		AllocBytes: p.memStats.TotalAlloc - p.lastAlloc,
		GCCount:    p.memStats.NumGC - p.lastGCCount,
	}

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := time.Duration(p.memStats.PauseNs[i%256]); pause > stats.MaxPause {
			stats.MaxPause = pause
		}
	}

	return stats
}

// Log writes stats to logger at info level.
//
// Parameters:
//   - logger: the destination logger
//   - msg: the log message
//   - stats: the measurement to report
func Log(logger *log.Logger, msg string, stats Stats) {
	logger.Info(msg,
		"duration", stats.Duration,
		"allocs", stats.Allocs,
		"allocMB", float64(stats.AllocBytes)/1024/1024,
		"gc", stats.GCCount,
		"maxPause", stats.MaxPause,
	)
}
