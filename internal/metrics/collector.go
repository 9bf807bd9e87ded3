package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// CallMetrics holds raw provider-call timings for a single model.
type CallMetrics struct {
	Count     int64
	Failures  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// CallSnapshot provides computed stats from raw call metrics.
type CallSnapshot struct {
	Model     string
	Count     int64
	Failures  int64
	AvgTimeMs float64
	MinTimeMs int64
	MaxTimeMs int64
}

// Collector aggregates in-memory provider-call statistics for the current
// run. All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	calls     map[string]*CallMetrics
}

// NewCollector creates a new call-statistics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		calls:     make(map[string]*CallMetrics),
	}
}

// RecordCall records the duration and outcome of one provider call.
func (c *Collector) RecordCall(model string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.calls[model]
	if !ok {
		m = &CallMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.calls[model] = m
	}

	m.Count++
	if failed {
		m.Failures++
	}
	m.TotalTime += duration
	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Elapsed returns the wall-clock time since the collector was created.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Snapshot returns point-in-time per-model call stats, sorted by model name.
func (c *Collector) Snapshot() []CallSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snaps := make([]CallSnapshot, 0, len(c.calls))
	for model, m := range c.calls {
		if m.Count == 0 {
			continue
		}
		snaps = append(snaps, CallSnapshot{
			Model:     model,
			Count:     m.Count,
			Failures:  m.Failures,
			AvgTimeMs: float64(m.TotalTime.Milliseconds()) / float64(m.Count),
			MinTimeMs: m.MinTime.Milliseconds(),
			MaxTimeMs: m.MaxTime.Milliseconds(),
		})
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Model < snaps[j].Model })
	return snaps
}
