package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounceRunsAfterQuietWindow(t *testing.T) {
	var calls int32
	d := NewDebouncer(10 * time.Millisecond)

	d.Debounce(func() { atomic.AddInt32(&calls, 1) })

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebounceCollapsesRapidCalls(t *testing.T) {
	var calls int32
	var last int32
	d := NewDebouncer(30 * time.Millisecond)

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Debounce(func() {
			atomic.StoreInt32(&last, v)
			atomic.AddInt32(&calls, 1)
		})
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), atomic.LoadInt32(&last), "only the final call runs")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "earlier calls never fire")
}

func TestDebounceCancel(t *testing.T) {
	var calls int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Debounce(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDebounceZeroDurationUsesDefault(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, DefaultDebounce, d.duration)
}
