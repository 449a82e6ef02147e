package core

import (
	"math"
	"time"
)

// Deadline reports how much of the current time slice is left.
type Deadline interface {
	TimeRemaining() time.Duration
}

// DeadlineFunc adapts a function to a Deadline.
type DeadlineFunc func() time.Duration

// TimeRemaining calls f.
func (f DeadlineFunc) TimeRemaining() time.Duration { return f() }

// Unbounded is a Deadline that never runs out.
var Unbounded Deadline = DeadlineFunc(func() time.Duration { return math.MaxInt64 })

// Scheduler is the host's cooperative scheduling primitive. It calls
// callback later, once, with the budget of a fresh time slice. A Root
// schedules itself again when it yields with work left.
type Scheduler interface {
	ScheduleIdleWork(callback func(Deadline))
}

// SchedulerFunc adapts a function to a Scheduler.
type SchedulerFunc func(callback func(Deadline))

// ScheduleIdleWork calls f.
func (f SchedulerFunc) ScheduleIdleWork(callback func(Deadline)) { f(callback) }

// SyncScheduler queues callbacks until Drain runs them on the calling
// goroutine with an Unbounded deadline. State setters called from an event
// handler only queue work, so every update made by the handler lands in
// the pass committed by the next Drain.
type SyncScheduler struct {
	queue []func(Deadline)
}

// ScheduleIdleWork queues callback.
func (s *SyncScheduler) ScheduleIdleWork(callback func(Deadline)) {
	if callback != nil {
		s.queue = append(s.queue, callback)
	}
}

// Pending returns the number of queued callbacks.
func (s *SyncScheduler) Pending() int {
	return len(s.queue)
}

// Drain runs queued callbacks, including the ones they queue, until none
// are left.
func (s *SyncScheduler) Drain() {
	for len(s.queue) > 0 {
		cb := s.queue[0]
		s.queue = s.queue[1:]
		cb(Unbounded)
	}
}
