package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks tick rate, slow ticks and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	logger         *log.Logger
	tickCount      int
	slowTicks      int
	worstTick      time.Duration
	budget         time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the tick budget to one 60Hz tick.
//
// Parameters:
//   - options: functional options for the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
		budget:         time.Second / 60,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// SetBudget sets the duration above which a tick counts as slow.
//
// Parameters:
//   - budget: the per-tick time budget
func (p *Profiler) SetBudget(budget time.Duration) {
	p.budget = budget
}

// SlowTicks returns the number of over-budget ticks in the current interval.
//
// Returns:
//   - int: slow tick count since the last report
func (p *Profiler) SlowTicks() int {
	return p.slowTicks
}

// Tick should be called once per engine tick with the time the tick's work took.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: tick rate, slow ticks, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - work: how long the tick's scenes and callbacks ran
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(work time.Duration) bool {
	p.tickCount++
	if p.budget > 0 && work > p.budget {
		p.slowTicks++
	}
	if work > p.worstTick {
		p.worstTick = work
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(p.tickCount) / s
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	var allocRateMB float64
	if s := elapsed.Seconds(); s > 0 {
		allocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / s
	}

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Printf("[Profiler] TPS: %.2f | Slow: %d (worst: %s) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		rate, p.slowTicks, p.worstTick, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.tickCount = 0
	p.slowTicks = 0
	p.worstTick = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
