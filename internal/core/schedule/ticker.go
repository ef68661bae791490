package schedule

import (
	"sync"
	"time"
)

// Handle cancels a repeating timer. Cancel is idempotent and returns
// without waiting for an in-flight callback.
type Handle interface {
	Cancel()
}

// Scheduler starts repeating timers.
type Scheduler interface {
	StartRepeating(callback func(), interval time.Duration) Handle
}

// TickerScheduler runs each repeating timer on its own goroutine backed
// by a time.Ticker.
type TickerScheduler struct{}

// NewTickerScheduler returns the real-time scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// StartRepeating invokes callback every interval until the returned
// handle is cancelled.
func (scheduler *TickerScheduler) StartRepeating(callback func(), interval time.Duration) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(callback, interval)
	return handle
}

type tickerHandle struct {
	stopCh chan struct{}
	once   sync.Once
}

func (handle *tickerHandle) run(callback func(), interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			select {
			case <-handle.stopCh:
				return
			default:
			}
			callback()
		}
	}
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
