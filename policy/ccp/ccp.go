// Package ccp implements CCP: popularity aging with an EWMA-like recurrence
// and bottom-scored eviction, grounded on
// original_source/NFD/daemon/table/cs-policy-ccp.{hpp,cpp}.
package ccp

import (
	"time"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/popqueue"
	"github.com/ndn-sim/cs-policy/logging"
	"github.com/ndn-sim/cs-policy/metrics"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
	"github.com/ndn-sim/cs-policy/scheduler"
)

// TypeName is the string this policy registers itself under.
const TypeName = "ccp"

// Shipped defaults, matching the original's c=0.5, T=2 (seconds).
const (
	DefaultC = 0.5
	DefaultT = 2 * time.Second
)

func init() {
	policy.Register(TypeName, func(cfg policy.Config) (policy.Policy, error) {
		return New(cfg)
	})
}

// Policy implements policy.Policy for CCP.
type Policy struct {
	queue    *popqueue.Queue
	capacity int

	c float64
	t time.Duration

	sched   scheduler.Scheduler
	onEvict policy.EvictFunc
	metrics *metrics.Metrics
	log     *logging.Logger
}

var _ policy.Policy = (*Policy)(nil)

// New constructs a CCP policy from cfg.
func New(cfg policy.Config) (*Policy, error) {
	p := &Policy{
		queue:   popqueue.New(),
		c:       cfg.C,
		t:       cfg.T,
		sched:   cfg.Scheduler,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
	}
	if p.c <= 0 {
		p.c = DefaultC
	}
	if p.t <= 0 {
		p.t = DefaultT
	}
	if p.sched == nil {
		p.sched = scheduler.NewReal()
	}
	if p.metrics == nil {
		p.metrics = metrics.New()
	}
	if p.log == nil {
		p.log = logging.New(TypeName, "info")
	}
	p.SetLimit(cfg.Capacity)
	p.scheduleAging()
	return p, nil
}

// SetOnEvict installs the beforeEvict signal handler.
func (p *Policy) SetOnEvict(fn policy.EvictFunc) {
	p.onEvict = fn
}

// SetLimit implements policy.Policy.
func (p *Policy) SetLimit(capacity int) {
	p.capacity = capacity
	p.evictEntries()
}

// Limit implements policy.Policy.
func (p *Policy) Limit() int {
	return p.capacity
}

// a is the aging coefficient 1 + c*T used in the aging recurrence. CCPCC
// computes the same coefficient with its own a method.
func (p *Policy) a() float64 {
	return 1 + p.c*p.t.Seconds()
}

// AfterInsert implements policy.Policy per §4.5.
func (p *Policy) AfterInsert(h entry.Handle) {
	p.log.Debug("afterInsert", "fresh record: "+h.Name().String())
	rec := &popqueue.Record{Name: h.Name(), P: 0, N: 1, Entry: h}
	p.queue.PushBack(rec)
	p.evictEntries()
}

// AfterRefresh implements policy.Policy.
func (p *Policy) AfterRefresh(h entry.Handle) {
	p.bumpN(h.Name())
}

// BeforeUse implements policy.Policy.
func (p *Policy) BeforeUse(n name.Name) {
	p.bumpN(n)
}

func (p *Policy) bumpN(n name.Name) {
	rec, ok := p.queue.Find(n)
	if !ok {
		p.log.Warn("bumpN", "unknown name: "+n.String())
		return
	}
	rec.N++
}

// BeforeErase implements policy.Policy: intentionally a no-op, matching the
// source (doBeforeErase is disabled there too).
func (p *Policy) BeforeErase(name.Name) {}

// evictEntries implements §4.5's evictEntries: pop the front while over
// capacity, then re-sort.
func (p *Policy) evictEntries() {
	evicted := false
	for p.capacity >= 0 && p.queue.Len() > p.capacity {
		rec, ok := p.queue.PopFront()
		if !ok {
			break
		}
		evicted = true
		p.metrics.IncrEviction()
		if p.onEvict != nil && rec.Entry != nil {
			p.onEvict(rec.Entry)
		}
	}
	if evicted {
		p.queue.Sort()
	}
}

// scheduleAging schedules the recurring aging tick every p.t, rescheduling
// itself each time it fires, per §5's "monotonically every T seconds"
// guarantee.
func (p *Policy) scheduleAging() {
	var tick func()
	tick = func() {
		p.ageTick()
		p.sched.ScheduleAfter(p.t, tick)
	}
	p.sched.ScheduleAfter(p.t, tick)
}

// ageTick implements §4.5's aging recurrence.
func (p *Policy) ageTick() {
	a := p.a()
	for _, rec := range p.queue.All() {
		rec.P = (a*float64(rec.N) + rec.P) / (a + 1)
		rec.N = 0
	}
	p.queue.Sort()
	p.log.Debugf("ageTick", "aged %d records, a=%.3f", p.queue.Len(), a)
}
