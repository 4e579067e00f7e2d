package ccpcc

import (
	"testing"
	"time"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
	"github.com/ndn-sim/cs-policy/scheduler"
)

type fakeHandle struct {
	n      name.Name
	marked bool
}

func (h *fakeHandle) Name() name.Name           { return h.n }
func (h *fakeHandle) DataNamePrefix() name.Name { return h.n.DropLastComponent() }
func (h *fakeHandle) CongestionMarked() bool    { return h.marked }

func handle(s string) entry.Handle { return &fakeHandle{n: name.Parse(s)} }

func newTestPolicy(t *testing.T, capacity int) (*Policy, *scheduler.Manual, *[]entry.Handle) {
	t.Helper()
	m := scheduler.NewManual()
	p, err := New(policy.Config{Capacity: capacity, C: 0.5, T: 2 * time.Second, Ua: 0.5, Ub: 0.5, Scheduler: m})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	evicted := &[]entry.Handle{}
	p.SetOnEvict(func(h entry.Handle) { *evicted = append(*evicted, h) })
	return p, m, evicted
}

// TestAdmissionRejection covers scenario 5: capacity=1, both uncongested.
// Per spec.md §4.1/§4.6, the CS has already inserted the entry by the time
// AfterInsert runs; a rejection is signaled back via beforeEvict, same as
// any other eviction, rather than a separate pre-insert gate.
func TestAdmissionRejection(t *testing.T) {
	p, m, evicted := newTestPolicy(t, 1)

	p.AfterInsert(handle("/A"))
	if _, ok := p.queue.Find(name.Parse("/A")); !ok {
		t.Fatal("/A should be admitted (cache not yet full)")
	}

	m.FireAll() // aging tick: A.p = 0.5*(2*1+0)/3 = 1/3 (n=1 from its insert, no congestion)

	p.AfterInsert(handle("/B"))
	if _, ok := p.queue.Find(name.Parse("/B")); ok {
		t.Fatal("/B should be rejected: cur_p <= front.p with a full cache")
	}
	if len(*evicted) != 1 || (*evicted)[0].Name().String() != "/B" {
		t.Fatalf("evicted = %v, want [/B] (the rejected entry itself)", namesOf(*evicted))
	}
	if _, ok := p.ghosts.Get(name.Parse("/B")); !ok {
		t.Error("/B should be remembered in ghosts after rejection")
	}
	if _, ok := p.queue.Find(name.Parse("/A")); !ok {
		t.Error("/A should remain resident")
	}
}

func TestQueueStaysSortedAfterInsert(t *testing.T) {
	p, _, _ := newTestPolicy(t, 3)
	for _, nm := range []string{"/A", "/B", "/C"} {
		p.AfterInsert(handle(nm))
	}
	recs := p.queue.All()
	for i := 1; i < len(recs); i++ {
		if recs[i-1].P > recs[i].P {
			t.Fatalf("queue not sorted ascending: %+v", recs)
		}
	}
}

func TestGhostHistoryConsumedOnReinsert(t *testing.T) {
	p, _, _ := newTestPolicy(t, 2)
	p.AfterInsert(handle("/A"))
	p.AfterInsert(handle("/B"))
	p.AfterInsert(handle("/C")) // cache full and cur_p=0 <= front.p=0: the admission test rejects /C into ghosts

	var evictedName string
	for _, nm := range []string{"/A", "/B", "/C"} {
		if _, ok := p.queue.Find(name.Parse(nm)); !ok {
			evictedName = nm
		}
	}
	if evictedName == "" {
		t.Fatal("expected exactly one name evicted into ghosts")
	}
	if _, ok := p.ghosts.Get(name.Parse(evictedName)); !ok {
		t.Fatalf("%s should be remembered in ghosts after eviction", evictedName)
	}

	p.AfterInsert(handle(evictedName))
	if _, ok := p.ghosts.Get(name.Parse(evictedName)); ok {
		t.Errorf("%s should be removed from ghosts once its history is consumed on re-insert", evictedName)
	}
}

func TestGhostPruneDisabledByDefault(t *testing.T) {
	p, m, _ := newTestPolicy(t, 1)
	p.AfterInsert(handle("/A"))
	p.AfterInsert(handle("/B"))
	m.FireAll()
	if p.ghostPruneThreshold != 0 {
		t.Fatalf("default GhostPruneThreshold should be 0 (disabled)")
	}
}

func namesOf(hs []entry.Handle) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name().String()
	}
	return out
}
