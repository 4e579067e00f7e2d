// Package lirs implements the LIRS replacement policy: a two-region
// (LIR / resident-HIR / non-resident-HIR) state machine driven by a primary
// stack and a FIFO resident-HIR list, grounded on
// original_source/NFD/daemon/table/cs-policy-lirs.{hpp,cpp} and restructured
// around internal/stack the way the teacher's lirs.go restructures the same
// algorithm around container/list plus a map index.
package lirs

import (
	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/stack"
	"github.com/ndn-sim/cs-policy/logging"
	"github.com/ndn-sim/cs-policy/metrics"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
)

// TypeName is the string this policy registers itself under.
const TypeName = "lirs"

func init() {
	policy.Register(TypeName, func(cfg policy.Config) (policy.Policy, error) {
		return New(cfg)
	})
}

// Policy implements policy.Policy for LIRS.
type Policy struct {
	s *stack.Stack
	q *stack.List

	hirSize int
	lirSize int

	onEvict policy.EvictFunc
	metrics *metrics.Metrics
	log     *logging.Logger
}

var _ policy.Policy = (*Policy)(nil)

// New constructs a LIRS policy from cfg. cfg.Capacity must be >= 0; with 0,
// every inserted entry is evicted at once.
func New(cfg policy.Config) (*Policy, error) {
	p := &Policy{
		s:       stack.NewStack(),
		q:       stack.NewList(),
		metrics: cfg.Metrics,
		log:     cfg.Logger,
	}
	if p.metrics == nil {
		p.metrics = metrics.New()
	}
	if p.log == nil {
		p.log = logging.New(TypeName, "info")
	}
	p.SetLimit(cfg.Capacity)
	return p, nil
}

// SetOnEvict installs the beforeEvict signal handler. The CS must call this
// before driving any other method.
func (p *Policy) SetOnEvict(fn policy.EvictFunc) {
	p.onEvict = fn
}

// SetLimit implements policy.Policy. hirSize = 1 + capacity/10 (integer
// division), lirSize = capacity - hirSize, per the original's setLimit.
func (p *Policy) SetLimit(capacity int) {
	if capacity <= 0 {
		p.hirSize = 0
		p.lirSize = 0
		return
	}
	p.hirSize = 1 + capacity/10
	p.lirSize = capacity - p.hirSize
}

// Limit implements policy.Policy.
func (p *Policy) Limit() int {
	return p.hirSize + p.lirSize
}

// AfterInsert implements policy.Policy per §4.3.
func (p *Policy) AfterInsert(h entry.Handle) {
	n := h.Name()

	if p.lirSize+p.hirSize == 0 {
		p.emitEvict(&stack.Record{Name: n, Entry: h})
		return
	}
	if p.curLIR() < p.lirSize {
		p.log.Debug("afterInsert", "fresh LIR: "+n.String())
		p.s.PushBack(&stack.Record{Name: n, State: stack.LIR, Entry: h})
		return
	}
	if p.q.Len() < p.hirSize {
		p.log.Debug("afterInsert", "fresh RHIR: "+n.String())
		p.s.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: h})
		p.q.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: h})
		return
	}

	// Cache full: evict Q's front.
	victim, ok := p.q.PopFront()
	if !ok {
		p.log.Fatal("afterInsert", "overflow branch reached with empty Q")
		return
	}
	p.log.Debug("afterInsert", "evicting Q front: "+victim.Name.String())
	if loc, found := p.s.Find(victim.Name); found {
		p.s.SetStateAt(loc, stack.NHIR)
	}

	if loc, found := p.s.Find(n); found {
		// Ghost hit: promote to LIR, demote current bottom.
		p.log.Debug("afterInsert", "ghost hit, promoting: "+n.String())
		p.s.SetStateAt(loc, stack.LIR)
		newLoc := p.s.MoveToTop(loc, h)
		p.s.SetStateAt(newLoc, stack.LIR)
		p.demoteBottom()
		p.s.Pruning()
	} else {
		p.s.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: h})
		p.q.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: h})
	}

	p.emitEvict(victim)
}

// demoteBottom demotes the current stack bottom (expected LIR) to RHIR and
// pushes it onto Q's back.
func (p *Policy) demoteBottom() {
	rec, loc, ok := p.s.GetBottom()
	if !ok {
		return
	}
	p.s.SetStateAt(loc, stack.RHIR)
	p.q.PushBack(&stack.Record{Name: rec.Name, State: stack.RHIR, Entry: rec.Entry})
}

// AfterRefresh implements policy.Policy; identical to BeforeUse per §4.3.
func (p *Policy) AfterRefresh(h entry.Handle) {
	p.use(h.Name(), h)
}

// BeforeUse implements policy.Policy.
func (p *Policy) BeforeUse(n name.Name) {
	p.use(n, nil)
}

// use implements the shared afterRefresh/beforeUse branch from §4.3.
// newEntry, if non-nil, replaces the stored handle (afterRefresh semantics).
func (p *Policy) use(n name.Name, newEntry entry.Handle) {
	if loc, found := p.s.Find(n); found {
		rec := p.s.RecordAt(loc)
		entryToKeep := rec.Entry
		if newEntry != nil {
			entryToKeep = newEntry
		}
		switch rec.State {
		case stack.LIR:
			p.log.Debug("use", "LIR hit, moving to top: "+n.String())
			p.s.MoveToTop(loc, entryToKeep)
			p.s.Pruning()
		case stack.RHIR:
			p.log.Debug("use", "RHIR hit, promoting: "+n.String())
			newLoc := p.s.MoveToTop(loc, entryToKeep)
			p.s.SetStateAt(newLoc, stack.LIR)
			p.demoteBottom()
			p.s.Pruning()
			p.q.FindAndRemove(n)
		case stack.NHIR:
			p.log.Warn("use", "hit on NHIR ghost outside afterInsert: "+n.String())
		}
		return
	}

	if qloc, found := p.q.Find(n); found {
		rec := p.q.RecordAt(qloc)
		entryToKeep := rec.Entry
		if newEntry != nil {
			entryToKeep = newEntry
		}
		p.s.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: entryToKeep})
		p.q.EraseAt(qloc)
		p.q.PushBack(&stack.Record{Name: n, State: stack.RHIR, Entry: entryToKeep})
		return
	}

	p.log.Warn("use", "unknown name: "+n.String())
}

// BeforeErase implements policy.Policy: a no-op, matching the source's
// doBeforeErase — stack pruning happens lazily when the erased record
// eventually becomes stack-bottom.
func (p *Policy) BeforeErase(name.Name) {}

func (p *Policy) emitEvict(rec *stack.Record) {
	p.metrics.IncrEviction()
	if p.onEvict != nil && rec.Entry != nil {
		p.onEvict(rec.Entry)
	}
}

// curLIR counts resident LIR records in the stack. LIRS never removes LIR
// records except by demotion, so a running counter would work too; this
// policy favors a structure-derived count to keep SetLimit/afterInsert free
// of counter-drift bugs, following §7's "invariant broken" error category.
func (p *Policy) curLIR() int {
	count := 0
	for _, rec := range p.s.Records() {
		if rec.State == stack.LIR {
			count++
		}
	}
	return count
}
