// Package ccpcc implements CCPCC: CCP plus per-prefix congestion weighting
// and a persistent ghost-entry history, grounded on
// original_source/NFD/daemon/table/cs-policy-ccpcc.{hpp,cpp}.
package ccpcc

import (
	"time"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/ghost"
	"github.com/ndn-sim/cs-policy/internal/nname"
	"github.com/ndn-sim/cs-policy/internal/popqueue"
	"github.com/ndn-sim/cs-policy/logging"
	"github.com/ndn-sim/cs-policy/metrics"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
	"github.com/ndn-sim/cs-policy/scheduler"
)

// TypeName is the string this policy registers itself under.
const TypeName = "ccpcc"

// Shipped defaults: c=0.5, T=2s, u_a=u_b=0.5.
const (
	DefaultC  = 0.5
	DefaultT  = 2 * time.Second
	DefaultUa = 0.5
	DefaultUb = 0.5
)

func init() {
	policy.Register(TypeName, func(cfg policy.Config) (policy.Policy, error) {
		return New(cfg)
	})
}

// Policy implements policy.Policy for CCPCC.
type Policy struct {
	queue    *popqueue.Queue
	ghosts   *ghost.Map
	capacity int

	c      float64
	t      time.Duration
	ua, ub float64

	ghostPruneThreshold float64

	congestion map[uint64]uint32
	prefixByH  map[uint64]name.Name // last prefix seen per congestion key; written by bumpCongestion, not read elsewhere

	sched   scheduler.Scheduler
	onEvict policy.EvictFunc
	metrics *metrics.Metrics
	log     *logging.Logger
}

var _ policy.Policy = (*Policy)(nil)

// New constructs a CCPCC policy from cfg.
func New(cfg policy.Config) (*Policy, error) {
	p := &Policy{
		queue:               popqueue.New(),
		ghosts:              ghost.New(),
		c:                   cfg.C,
		t:                   cfg.T,
		ua:                  cfg.Ua,
		ub:                  cfg.Ub,
		ghostPruneThreshold: cfg.GhostPruneThreshold,
		congestion:          make(map[uint64]uint32),
		prefixByH:           make(map[uint64]name.Name),
		sched:               cfg.Scheduler,
		metrics:             cfg.Metrics,
		log:                 cfg.Logger,
	}
	if p.c <= 0 {
		p.c = DefaultC
	}
	if p.t <= 0 {
		p.t = DefaultT
	}
	if p.ua <= 0 {
		p.ua = DefaultUa
	}
	if p.ub <= 0 {
		p.ub = DefaultUb
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
	p.capacity = cfg.Capacity
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

func (p *Policy) a() float64 {
	return 1 + p.c*p.t.Seconds()
}

func (p *Policy) bumpCongestion(prefix name.Name, marked bool) uint32 {
	h := nname.Hash(prefix)
	p.prefixByH[h] = prefix
	if marked {
		p.congestion[h]++
	} else if _, ok := p.congestion[h]; !ok {
		p.congestion[h] = 0
	}
	return p.congestion[h]
}

// AfterInsert implements policy.Policy per §4.6 steps 1-5, run as the single
// callback the CS makes once it has already inserted h: compute h's
// admission score from its congestion mark and any remembered ghost
// history, and either reject it outright (step 4: the entry stays in the
// CS's table for not one instant longer than it takes to signal beforeEvict
// for it) or admit it into the popularity queue (step 5).
func (p *Policy) AfterInsert(h entry.Handle) {
	n := h.Name()
	prefix := h.DataNamePrefix()
	congestionCount := p.bumpCongestion(prefix, h.CongestionMarked())

	historyP, historyN := 0.0, uint32(0)
	if rec, ok := p.ghosts.Take(n); ok {
		historyP, historyN = rec.P, rec.N
	}

	a := p.a()
	curP := p.ua*(a*float64(historyN)+historyP)/(a+1) + p.ub*float64(congestionCount)

	if p.capacity >= 0 && p.queue.Len() >= p.capacity {
		if front, ok := p.queue.Front(); ok && curP <= front.P {
			p.log.Debugf("afterInsert", "rejecting %s: cur_p=%.4f <= front.p=%.4f", n.String(), curP, front.P)
			p.ghosts.Put(n, historyP, historyN+1)
			p.metrics.IncrReject()
			if p.onEvict != nil {
				p.onEvict(h)
			}
			return
		}
	}

	rec := &popqueue.Record{Name: n, Prefix: prefix, P: curP, N: 1, Entry: h}
	p.queue.PushBack(rec)
	p.queue.Sort()
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

// BeforeErase implements policy.Policy: intentionally a no-op, same as CCP
// — the source leaves this disabled and spec.md's Open Question preserves
// that shipped behavior rather than tightening it.
func (p *Policy) BeforeErase(name.Name) {}

// evictEntries implements §4.6's evictEntries: while over capacity, pop the
// front and move its {p, n} into ghosts.
func (p *Policy) evictEntries() {
	for p.capacity >= 0 && p.queue.Len() > p.capacity {
		rec, ok := p.queue.PopFront()
		if !ok {
			break
		}
		p.ghosts.Put(rec.Name, rec.P, rec.N)
		p.metrics.IncrEviction()
		if p.onEvict != nil && rec.Entry != nil {
			p.onEvict(rec.Entry)
		}
	}
}

// scheduleAging schedules the recurring aging tick, rescheduling itself.
func (p *Policy) scheduleAging() {
	var tick func()
	tick = func() {
		p.ageTick()
		p.sched.ScheduleAfter(p.t, tick)
	}
	p.sched.ScheduleAfter(p.t, tick)
}

// ageTick implements §4.6's aging recurrence for both resident records and
// ghosts, then clears congestion and re-sorts.
func (p *Policy) ageTick() {
	a := p.a()
	for _, rec := range p.queue.All() {
		h := nname.Hash(rec.Prefix)
		congestionCount := p.congestion[h]
		rec.P = p.ua*(a*float64(rec.N)+rec.P)/(a+1) + p.ub*float64(congestionCount)
		rec.N = 0
	}
	p.ghosts.Each(func(r *ghost.Record) {
		r.P = (a*float64(r.N) + r.P) / (a + 1)
		r.N = 0
	})
	if p.ghostPruneThreshold > 0 {
		p.ghosts.Prune(p.ghostPruneThreshold)
	}
	for h := range p.congestion {
		delete(p.congestion, h)
	}
	p.queue.Sort()
	p.log.Debug("ageTick", p.queue.Dump())
}
