package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by explicit Fire calls. It records every
// timer it hands out so callers can check that no more than one is live.
type Manual struct {
	mu      sync.Mutex
	timers  []*ManualTimer
	started int
}

// ManualTimer is a timer created by Manual.
type ManualTimer struct {
	callback  func()
	interval  time.Duration
	cancelled bool
	owner     *Manual
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// StartRepeating registers callback without starting any goroutine.
func (manual *Manual) StartRepeating(callback func(), interval time.Duration) Handle {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	timer := &ManualTimer{callback: callback, interval: interval, owner: manual}
	manual.timers = append(manual.timers, timer)
	manual.started++
	return timer
}

// Cancel stops the timer.
func (timer *ManualTimer) Cancel() {
	timer.owner.mu.Lock()
	defer timer.owner.mu.Unlock()
	timer.cancelled = true
}

// Interval returns the interval the timer was started with.
func (timer *ManualTimer) Interval() time.Duration {
	return timer.interval
}

// Fire invokes every live timer's callback once and reports how many ran.
func (manual *Manual) Fire() int {
	live := manual.liveTimers()
	for _, timer := range live {
		timer.callback()
	}
	return len(live)
}

// Advance fires count times.
func (manual *Manual) Advance(count int) {
	for i := 0; i < count; i++ {
		manual.Fire()
	}
}

// Active returns the number of timers that have not been cancelled.
func (manual *Manual) Active() int {
	return len(manual.liveTimers())
}

// Started returns how many timers were ever started.
func (manual *Manual) Started() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.started
}

// Timers returns every timer handed out so far, including cancelled ones.
func (manual *Manual) Timers() []*ManualTimer {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return append([]*ManualTimer(nil), manual.timers...)
}

// FireStale invokes the callback of a cancelled timer, simulating a tick
// that was already in flight when the timer was cancelled.
func (timer *ManualTimer) FireStale() {
	timer.callback()
}

func (manual *Manual) liveTimers() []*ManualTimer {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	live := make([]*ManualTimer, 0, len(manual.timers))
	for _, timer := range manual.timers {
		if !timer.cancelled {
			live = append(live, timer)
		}
	}
	return live
}
