package monitoring

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"
)

// Health thresholds
const (
	maxMemoryBytes = 500 * 1024 * 1024
	maxGoroutines  = 1000
)

// Metrics is a point-in-time copy of the collected measurements
type Metrics struct {
	StartTime       time.Time `json:"start_time"`
	LastCollectTime time.Time `json:"last_collect_time"`

	// Memory metrics
	MemoryUsage    int64  `json:"memory_usage"`
	HeapSize       int64  `json:"heap_size"`
	GoroutineCount int    `json:"goroutine_count"`
	GCCount        uint32 `json:"gc_count"`

	// Operation counters
	HTTPRequests int64            `json:"http_requests"`
	DecksBuilt   int64            `json:"decks_built"`
	SlidesBuilt  int64            `json:"slides_built"`
	Failures     map[string]int64 `json:"failures"`

	// AverageBuildTime is an exponential moving average over successful builds
	AverageBuildTime time.Duration `json:"average_build_time"`
}

// Monitor collects deck pipeline and runtime metrics
type Monitor struct {
	mu      sync.RWMutex
	metrics Metrics
	ticker  *time.Ticker
	stopCh  chan struct{}
	running bool
}

// NewMonitor creates a monitor. Counters work without Start; Start adds
// periodic runtime sampling.
func NewMonitor() *Monitor {
	return &Monitor{
		metrics: Metrics{
			StartTime: time.Now(),
			Failures:  make(map[string]int64),
		},
	}
}

// Start samples runtime metrics every interval until Stop or ctx is done
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.running = true
	m.stopCh = make(chan struct{})
	m.ticker = time.NewTicker(interval)

	m.sampleLocked()
	go m.collect(ctx, m.ticker, m.stopCh)
}

// Stop ends runtime sampling
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false
	m.ticker.Stop()
	close(m.stopCh)
}

func (m *Monitor) collect(ctx context.Context, ticker *time.Ticker, stopCh <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			m.mu.Lock()
			m.sampleLocked()
			m.mu.Unlock()
		}
	}
}

// sampleLocked reads runtime memory stats; m.mu must be held
func (m *Monitor) sampleLocked() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.metrics.MemoryUsage = safeUint64ToInt64(memStats.Alloc)
	m.metrics.HeapSize = safeUint64ToInt64(memStats.HeapAlloc)
	m.metrics.GoroutineCount = runtime.NumGoroutine()
	m.metrics.GCCount = memStats.NumGC
	m.metrics.LastCollectTime = time.Now()
}

// RecordHTTPRequest counts one served request
func (m *Monitor) RecordHTTPRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.HTTPRequests++
}

// RecordDeck records a successful build of a deck with the given slide count
func (m *Monitor) RecordDeck(duration time.Duration, slides int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.DecksBuilt++
	m.metrics.SlidesBuilt += int64(slides)

	if m.metrics.AverageBuildTime == 0 {
		m.metrics.AverageBuildTime = duration
		return
	}

	// Exponential moving average
	alpha := 0.1
	m.metrics.AverageBuildTime = time.Duration(
		float64(m.metrics.AverageBuildTime)*(1-alpha) + float64(duration)*alpha,
	)
}

// RecordFailure counts a failed build under kind, e.g. "client" or "upstream"
func (m *Monitor) RecordFailure(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.Failures[kind]++
}

// Metrics returns a copy of the current metrics
func (m *Monitor) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := m.metrics
	snapshot.Failures = make(map[string]int64, len(m.metrics.Failures))
	for kind, count := range m.metrics.Failures {
		snapshot.Failures[kind] = count
	}
	return snapshot
}

// Uptime returns the time since the monitor was created
func (m *Monitor) Uptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return time.Since(m.metrics.StartTime)
}

// IsHealthy reports whether the last sample is within memory and goroutine limits
func (m *Monitor) IsHealthy() bool {
	metrics := m.Metrics()
	return metrics.MemoryUsage < maxMemoryBytes && metrics.GoroutineCount < maxGoroutines
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
