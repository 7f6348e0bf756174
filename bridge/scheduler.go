package bridge

import (
	"sort"
	"time"
)

// Task is a cancellable handle for a scheduled deferred call.
type Task interface {
	// Cancel stops the task if it has not run yet and reports whether it
	// was still pending.
	Cancel() bool
}

// Scheduler abstracts deferred execution so the controller's debounce and
// highlight timers can be driven by virtual time in tests. Implementations
// may run callbacks on any goroutine; TimerScheduler runs them on timer
// goroutines, and the controller serializes them against its own callers.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// TimerScheduler is the production scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.timer.Stop()
}

func (TimerScheduler) Schedule(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, fn)}
}

// ManualScheduler queues tasks and runs them when virtual time is advanced.
// Tests use it to make debounce behavior deterministic.
type ManualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	fn        func()
	cancelled bool
	done      bool
}

func (t *manualTask) Cancel() bool {
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// NewManualScheduler creates a scheduler driven by Advance.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Task {
	task := &manualTask{due: s.now + d, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves virtual time forward and runs every due, uncancelled task in
// schedule order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	sort.SliceStable(s.tasks, func(i, j int) bool { return s.tasks[i].due < s.tasks[j].due })
	for _, task := range s.tasks {
		if task.done || task.cancelled || task.due > s.now {
			continue
		}
		task.done = true
		task.fn()
	}
	remaining := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.done && !task.cancelled {
			remaining = append(remaining, task)
		}
	}
	s.tasks = remaining
}

// Pending reports how many tasks are queued and not yet run or cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, task := range s.tasks {
		if !task.done && !task.cancelled {
			n++
		}
	}
	return n
}
