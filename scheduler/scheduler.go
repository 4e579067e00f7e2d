// Package scheduler provides the host-injected "schedule a delayed callback"
// capability the popularity policies (CCP, CCPCC) use for their periodic
// aging tick. The policy constructor takes a Scheduler rather than reaching
// for a global time source, per the design notes ("the policy should not
// take a hard dependency on a specific time source").
package scheduler

import "time"

// Token identifies one scheduled callback; it can be passed to Cancel.
type Token interface{}

// Scheduler schedules fn to run after d elapses. The scheduler guarantees
// fn runs serially relative to any CS callback the host also drives through
// the same event loop — the real implementation below achieves that only
// insofar as the caller doesn't also mutate policy state from another
// goroutine, matching the single-threaded-cooperative model in spec.md §5.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func()) Token
	Cancel(t Token)
}

// Real is a Scheduler backed by time.AfterFunc, suitable for the cmd/cscli
// simulator and for production use outside of a deterministic test harness.
type Real struct{}

// NewReal returns a Scheduler that runs callbacks on real wall-clock time.
func NewReal() Real {
	return Real{}
}

// ScheduleAfter implements Scheduler.
func (Real) ScheduleAfter(d time.Duration, fn func()) Token {
	return time.AfterFunc(d, fn)
}

// Cancel implements Scheduler.
func (Real) Cancel(t Token) {
	if timer, ok := t.(*time.Timer); ok {
		timer.Stop()
	}
}
