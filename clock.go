package xdgshell

import "time"

// Clock abstracts timer scheduling so ping and configure-coalescing
// timers (spec.md sections 4.6, 4.7) can be driven deterministically
// in tests instead of by wall-clock sleeps.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the timer from firing, if it hasn't already. It
	// reports whether the stop was in time.
	Stop() bool
}

type realClock struct{}

// RealClock is the default Clock, backed by the standard library's
// time.AfterFunc.
var RealClock Clock = realClock{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
