package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         zerolog.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption configures a Profiler during construction.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger stats are written to.
func WithLogger(logger zerolog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithInterval sets how often stats are logged.
//
// Parameters:
//   - interval: the logging interval; negative values are treated as zero
//
// Returns:
//   - ProfilerOption: a function that sets the interval
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = max(interval, 0)
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zerolog.Nop(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs FPS, heap usage, allocation rate, GC count and pause times, and total memory
// when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	allocRate := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info().
		Float64("fps", float64(p.frameCount)/seconds).
		Float64("heapMB", float64(p.memStats.Alloc)/1024/1024).
		Float64("allocRateMBs", allocRate).
		Uint32("gc", gcCount).
		Uint64("lastPauseUs", lastPauseUs).
		Uint64("maxPauseUs", maxPauseUs).
		Float64("sysMB", float64(p.memStats.Sys)/1024/1024).
		Msg("profiler")

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
