package testing

import (
	"time"

	"github.com/go-drift/fiber/pkg/core"
)

// StepDeadline is a deadline with a budget of n checks: the first n-1
// calls of TimeRemaining report an hour left, every later call reports
// none. A core.Root checks once per fiber, so a slice run with
// NewStepDeadline(n) processes exactly n fibers unless it runs out of work.
type StepDeadline struct {
	left int
}

// NewStepDeadline returns a StepDeadline for n checks. n < 1 is treated as 1.
func NewStepDeadline(n int) *StepDeadline {
	return &StepDeadline{left: max(n, 1)}
}

// TimeRemaining implements core.Deadline.
func (d *StepDeadline) TimeRemaining() time.Duration {
	d.left--
	if d.left > 0 {
		return time.Hour
	}
	return 0
}

// ManualScheduler queues idle callbacks until they are run explicitly.
type ManualScheduler struct {
	queue []func(core.Deadline)
}

var _ core.Scheduler = (*ManualScheduler)(nil)

// ScheduleIdleWork implements core.Scheduler.
func (s *ManualScheduler) ScheduleIdleWork(callback func(core.Deadline)) {
	s.queue = append(s.queue, callback)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// RunNext runs the oldest queued callback with d and reports whether there
// was one.
func (s *ManualScheduler) RunNext(d core.Deadline) bool {
	if len(s.queue) == 0 {
		return false
	}
	cb := s.queue[0]
	s.queue = s.queue[1:]
	cb(d)
	return true
}
