//go:build linux

package wait

import "golang.org/x/sys/unix"

// sleepNanoseconds uses nanosleep(2) for nanosecond-resolution relative
// sleeps. An interrupted sleep (EINTR) is treated as an early wake-up;
// the waiter's measurement loop re-checks the clock either way.
func sleepNanoseconds(ns int64) {
	ts := unix.NsecToTimespec(ns)
	unix.Nanosleep(&ts, nil)
}
