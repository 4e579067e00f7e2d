package dlirs

import (
	"testing"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/stack"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
)

type fakeHandle struct{ n name.Name }

func (h *fakeHandle) Name() name.Name           { return h.n }
func (h *fakeHandle) DataNamePrefix() name.Name { return h.n.DropLastComponent() }
func (h *fakeHandle) CongestionMarked() bool    { return false }

func handle(s string) entry.Handle { return &fakeHandle{n: name.Parse(s)} }

func newTestPolicy(t *testing.T, capacity int) (*Policy, *[]entry.Handle) {
	t.Helper()
	p, err := New(policy.Config{Capacity: capacity})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	evicted := &[]entry.Handle{}
	p.SetOnEvict(func(h entry.Handle) { *evicted = append(*evicted, h) })
	return p, evicted
}

func TestSetLimitBounds(t *testing.T) {
	p, _ := newTestPolicy(t, 4)
	if p.hirSize < 1 || p.hirSize > p.capacity-1 {
		t.Fatalf("hirSize = %d out of bounds for capacity %d", p.hirSize, p.capacity)
	}
	if p.hirSize+p.lirSize != p.capacity {
		t.Fatalf("hirSize+lirSize = %d, want %d", p.hirSize+p.lirSize, p.capacity)
	}
}

func TestColdInsertionsPartition(t *testing.T) {
	p, evicted := newTestPolicy(t, 4)
	for _, nm := range []string{"/A", "/B", "/C", "/D"} {
		p.AfterInsert(handle(nm))
	}
	if len(*evicted) != 0 {
		t.Fatalf("no eviction expected, got %d", len(*evicted))
	}
	if p.curLIR != p.lirSize {
		t.Errorf("curLIR = %d, want lirSize %d", p.curLIR, p.lirSize)
	}
	bottom, _, ok := p.s.GetBottom()
	if !ok || bottom.State != stack.LIR {
		t.Fatalf("stack bottom must be LIR")
	}
}

func TestOverflowEvictsAndRebalances(t *testing.T) {
	p, evicted := newTestPolicy(t, 4)
	for _, nm := range []string{"/A", "/B", "/C", "/D", "/E", "/F"} {
		p.AfterInsert(handle(nm))
	}
	if len(*evicted) == 0 {
		t.Fatal("expected evictions once cache overflowed")
	}
	if total := p.curLIR + p.curHIR; total > p.capacity {
		t.Errorf("resident total %d exceeds capacity %d", total, p.capacity)
	}
	if stackLen := p.s.Len(); stackLen > 2*p.capacity {
		t.Errorf("stack length %d exceeds 2*capacity budget %d", stackLen, 2*p.capacity)
	}
}

func TestGhostPromotionRebalancesPartition(t *testing.T) {
	p, _ := newTestPolicy(t, 4)
	for _, nm := range []string{"/A", "/B", "/C", "/D", "/E"} {
		p.AfterInsert(handle(nm))
	}
	// /D was demoted to a ghost by the overflow branch; re-insert it.
	p.AfterInsert(handle("/D"))

	if loc, found := p.s.Find(name.Parse("/D")); !found || p.s.StateAt(loc) != stack.LIR {
		t.Fatalf("/D should be promoted back to LIR")
	}
	if p.hirSize < 1 || p.hirSize > p.capacity-1 {
		t.Errorf("hirSize = %d left out of bounds after adjustSize", p.hirSize)
	}
}

func TestBeforeEraseRebalancesHIR(t *testing.T) {
	p, _ := newTestPolicy(t, 4)
	for _, nm := range []string{"/A", "/B", "/C", "/D"} {
		p.AfterInsert(handle(nm))
	}
	p.BeforeErase(name.Parse("/D"))
	if _, found := p.q.Find(name.Parse("/D")); found {
		t.Error("/D should be gone from Q after BeforeErase")
	}
	if p.curHIR > p.hirSize {
		t.Errorf("curHIR = %d exceeds hirSize %d after rebalance", p.curHIR, p.hirSize)
	}
}
