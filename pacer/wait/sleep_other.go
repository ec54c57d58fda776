//go:build !linux

package wait

import (
	"runtime"
	"time"
)

// sleepNanoseconds falls back to millisecond-granularity sleeping,
// yielding the processor for sub-millisecond remainders. The waiter's
// spin phase absorbs whatever imprecision is left over.
func sleepNanoseconds(ns int64) {
	ms := ns / int64(time.Millisecond)
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return
	}
	runtime.Gosched()
}
