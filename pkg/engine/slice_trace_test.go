package engine

import (
	"testing"
	"time"
)

func TestSliceTraceBuffer_Defaults(t *testing.T) {
	b := NewSliceTraceBuffer(0, 0)
	if b.Capacity() != sliceTraceSamplesDefault {
		t.Errorf("expected capacity %d, got %d", sliceTraceSamplesDefault, b.Capacity())
	}
	if tl := b.Snapshot(); len(tl.Samples) != 0 || tl.BudgetMs != 8 {
		t.Errorf("unexpected empty timeline %+v", tl)
	}
}

func TestSliceTraceBuffer_Wraps(t *testing.T) {
	b := NewSliceTraceBuffer(3, time.Millisecond)
	for i := range 5 {
		b.Add(SliceSample{Timestamp: int64(i)}, time.Duration(i)*time.Millisecond)
	}

	tl := b.Snapshot()
	if len(tl.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(tl.Samples))
	}
	for i, s := range tl.Samples {
		if s.Timestamp != int64(i+2) {
			t.Errorf("sample %d: expected ts %d, got %d", i, i+2, s.Timestamp)
		}
	}
	if tl.Overruns != 3 {
		t.Errorf("expected 3 overruns, got %d", tl.Overruns)
	}
}
