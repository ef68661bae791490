package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerSchedulerRepeatsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	handle := NewTickerScheduler().StartRepeating(func() { calls.Add(1) }, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	handle.Cancel()
	handle.Cancel()
	time.Sleep(20 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestManualFiresOnlyLiveTimers(t *testing.T) {
	manual := NewManual()
	var first, second int
	handle := manual.StartRepeating(func() { first++ }, time.Second)
	manual.StartRepeating(func() { second++ }, time.Second)

	assert.Equal(t, 2, manual.Fire())
	handle.Cancel()
	manual.Advance(2)

	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 1, manual.Active())
	assert.Equal(t, 2, manual.Started())
	assert.Equal(t, time.Second, manual.Timers()[0].Interval())
}
