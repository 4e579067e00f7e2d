package scheduler

import "time"

var (
	_ Scheduler = Real{}
	_ Scheduler = (*Manual)(nil)
)

// Manual is a deterministic Scheduler for tests: nothing runs until FireAll
// is called explicitly, so aging-tick behavior can be asserted without
// sleeping real wall-clock time.
type Manual struct {
	pending []func()
}

// NewManual returns an empty Manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// ScheduleAfter implements Scheduler; d is ignored — ordering, not timing,
// is what a deterministic test cares about.
func (m *Manual) ScheduleAfter(_ time.Duration, fn func()) Token {
	m.pending = append(m.pending, fn)
	return len(m.pending) - 1
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(t Token) {
	idx, ok := t.(int)
	if !ok || idx < 0 || idx >= len(m.pending) {
		return
	}
	m.pending[idx] = nil
}

// FireAll runs and clears every pending callback, in schedule order. A
// policy that reschedules itself at the end of its tick will have re-queued
// a new callback by the time FireAll returns, ready for the next FireAll.
func (m *Manual) FireAll() {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

// Pending reports how many callbacks are currently queued.
func (m *Manual) Pending() int {
	n := 0
	for _, fn := range m.pending {
		if fn != nil {
			n++
		}
	}
	return n
}
