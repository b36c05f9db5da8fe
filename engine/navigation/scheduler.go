package navigation

import (
	"sort"
	"time"
)

// Clock supplies the current time to the scheduler and pivot drift.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// Task is a callback scheduled on a Scheduler. The zero value and nil are valid, never-pending tasks.
type Task struct {
	due      time.Time
	seq      uint64
	fn       func()
	finished bool
}

// Cancel prevents the task from running. It is synchronous and safe to call more than once,
// on a nil task, or after the task already ran.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.finished = true
	t.fn = nil
}

// Pending reports whether the task is still waiting to run.
//
// Returns:
//   - bool: true until the task runs or is cancelled
func (t *Task) Pending() bool {
	return t != nil && !t.finished
}

// Scheduler runs delayed callbacks on the caller's goroutine. Nothing runs until RunDue is
// called, which the navigator does once per tick, so callbacks never race with input handlers.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock Clock
	tasks []*Task
	seq   uint64
}

// NewScheduler creates a scheduler reading time from clock.
//
// Parameters:
//   - clock: time source; nil selects SystemClock
//
// Returns:
//   - *Scheduler: the new scheduler
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{clock: clock}
}

// After schedules fn to run on the first RunDue at or after now+delay.
//
// Parameters:
//   - delay: minimum time before fn runs
//   - fn: the callback
//
// Returns:
//   - *Task: handle used to cancel the callback
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{due: s.clock.Now().Add(delay), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// RunDue runs every pending task whose due time has passed, earliest first. Tasks scheduled by
// a callback wait for the next RunDue even if they are already due.
//
// Returns:
//   - int: number of callbacks run
func (s *Scheduler) RunDue() int {
	if len(s.tasks) == 0 {
		return 0
	}
	now := s.clock.Now()

	var due []*Task
	for _, t := range s.tasks {
		if t.Pending() && !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		// An earlier callback may have cancelled this one.
		if !t.Pending() {
			continue
		}
		fn := t.fn
		t.finished = true
		t.fn = nil
		if fn != nil {
			fn()
			ran++
		}
	}

	s.compact()
	return ran
}

// CancelAll cancels every outstanding task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Pending() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
