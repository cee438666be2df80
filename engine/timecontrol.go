package engine

import "time"

// TimeControl computes and tracks the think-time budget for one search.
type TimeControl struct {
	deadline time.Time
	started  time.Time
}

// NewTimeControl derives a think-time budget from the clock and increment
// for the side to move: wtime/20 + winc/2 (btime/binc for Black), and
// starts the clock running immediately.
func NewTimeControl(co Color, wtime, btime, winc, binc int) *TimeControl {
	clock, inc := wtime, winc
	if co == Black {
		clock, inc = btime, binc
	}
	thinkMs := clock/20 + inc/2
	if thinkMs <= 0 {
		thinkMs = 1
	}
	now := time.Now()
	return &TimeControl{
		started:  now,
		deadline: now.Add(time.Duration(thinkMs) * time.Millisecond),
	}
}

// Infinite returns a TimeControl with no deadline, used when `go` carries
// no wtime/btime (e.g. `go infinite`) and by callers that drive the search
// directly.
func Infinite() *TimeControl {
	return &TimeControl{started: time.Now(), deadline: time.Time{}}
}

// Expired reports whether the think-time budget has elapsed.
func (tc *TimeControl) Expired() bool {
	return !tc.deadline.IsZero() && time.Now().After(tc.deadline)
}

// Elapsed returns the time spent searching so far.
func (tc *TimeControl) Elapsed() time.Duration {
	return time.Since(tc.started)
}
