package auth

import (
	"sync"
	"time"
)

// Task is a scheduled callback.
type Task interface {
	// Done is closed once the callback has returned or the task was stopped.
	Done() <-chan struct{}
	// Stop cancels the callback; it reports false if the callback already started.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	// AfterFunc runs f in its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Task
}

// TimerScheduler schedules callbacks on runtime timers.
type TimerScheduler struct{}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// AfterFunc runs f after d.
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	task := &timerTask{done: make(chan struct{})}
	task.timer = time.AfterFunc(d, func() {
		defer task.finish()

		f()
	})

	return task
}

type timerTask struct {
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

func (t *timerTask) Done() <-chan struct{} {
	return t.done
}

func (t *timerTask) Stop() bool {
	stopped := t.timer.Stop()
	if stopped {
		t.finish()
	}

	return stopped
}

func (t *timerTask) finish() {
	t.once.Do(func() {
		close(t.done)
	})
}
