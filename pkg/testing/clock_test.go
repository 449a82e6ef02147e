package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	clk.Set(target)

	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeClock_Deadline(t *testing.T) {
	clk := NewFakeClock()
	d := clk.Deadline(16 * time.Millisecond)

	if got := d.TimeRemaining(); got != 16*time.Millisecond {
		t.Errorf("expected 16ms remaining, got %v", got)
	}
	clk.Advance(10 * time.Millisecond)
	if got := d.TimeRemaining(); got != 6*time.Millisecond {
		t.Errorf("expected 6ms remaining, got %v", got)
	}
	clk.Advance(10 * time.Millisecond)
	if got := d.TimeRemaining(); got >= 0 {
		t.Errorf("expected an exhausted deadline, got %v", got)
	}
}
