package engine

import (
	"sync"
	"time"
)

const sliceTraceSamplesDefault = 240

// SliceSample is a single slice trace sample.
type SliceSample struct {
	Timestamp  int64   `json:"ts"`
	DurationMs float64 `json:"durationMs"`
	Dispatched int     `json:"dispatched"`
	Callbacks  int     `json:"callbacks"`
}

// SliceTimeline is the debug server response shape.
type SliceTimeline struct {
	Samples  []SliceSample `json:"samples"`
	Overruns int           `json:"overruns"`
	BudgetMs float64       `json:"budgetMs"`
}

// SliceTraceBuffer stores recent slice samples in a ring buffer.
type SliceTraceBuffer struct {
	mu       sync.RWMutex
	samples  []SliceSample
	index    int
	count    int
	overruns int
	budget   time.Duration
}

// NewSliceTraceBuffer creates a buffer holding capacity samples. Slices
// longer than budget count as overruns.
func NewSliceTraceBuffer(capacity int, budget time.Duration) *SliceTraceBuffer {
	if capacity <= 0 {
		capacity = sliceTraceSamplesDefault
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &SliceTraceBuffer{
		samples: make([]SliceSample, capacity),
		budget:  budget,
	}
}

// Capacity returns the buffer capacity.
func (b *SliceTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Add records a sample and updates the overrun count.
func (b *SliceTraceBuffer) Add(sample SliceSample, elapsed time.Duration) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if elapsed > b.budget {
		b.overruns++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of samples and stats.
func (b *SliceTraceBuffer) Snapshot() SliceTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return SliceTimeline{BudgetMs: durationToMillis(b.budget)}
	}

	result := make([]SliceSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return SliceTimeline{
		Samples:  result,
		Overruns: b.overruns,
		BudgetMs: durationToMillis(b.budget),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
