package ghost

import (
	"testing"

	"github.com/ndn-sim/cs-policy/name"
)

func TestPutGetTake(t *testing.T) {
	m := New()
	n := name.Parse("/a")

	if _, ok := m.Get(n); ok {
		t.Fatal("expected no ghost record before Put")
	}

	m.Put(n, 0.75, 3)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	rec, ok := m.Get(n)
	if !ok || rec.P != 0.75 || rec.N != 3 {
		t.Errorf("Get() = %+v, ok=%v", rec, ok)
	}

	taken, ok := m.Take(n)
	if !ok || taken.P != 0.75 {
		t.Error("Take should return the same record")
	}
	if m.Len() != 0 {
		t.Errorf("Len() after Take = %d, want 0", m.Len())
	}
	if _, ok := m.Get(n); ok {
		t.Error("Take should remove the record")
	}
}

func TestTakeMissing(t *testing.T) {
	m := New()
	rec, ok := m.Take(name.Parse("/missing"))
	if ok {
		t.Error("Take on a missing name should report false")
	}
	if rec.P != 0 || rec.N != 0 {
		t.Error("Take on a missing name should return the zero record")
	}
}

func TestPruneDisabledByDefault(t *testing.T) {
	m := New()
	m.Put(name.Parse("/a"), 0.001, 0)
	if pruned := m.Prune(0); pruned != 0 {
		t.Error("Prune(0) must be a no-op")
	}
	if m.Len() != 1 {
		t.Error("Prune(0) must not remove any ghost record")
	}
}

func TestPruneThreshold(t *testing.T) {
	m := New()
	m.Put(name.Parse("/low"), 0.001, 0)
	m.Put(name.Parse("/high"), 5.0, 0)

	pruned := m.Prune(0.01)
	if pruned != 1 {
		t.Fatalf("Prune(0.01) pruned %d, want 1", pruned)
	}
	if _, ok := m.Get(name.Parse("/low")); ok {
		t.Error("/low should have been pruned")
	}
	if _, ok := m.Get(name.Parse("/high")); !ok {
		t.Error("/high should survive pruning")
	}
}

func TestEachMutates(t *testing.T) {
	m := New()
	m.Put(name.Parse("/a"), 1.0, 4)
	m.Each(func(r *Record) {
		r.P /= 2
		r.N = 0
	})
	rec, _ := m.Get(name.Parse("/a"))
	if rec.P != 0.5 || rec.N != 0 {
		t.Errorf("Each did not mutate in place: %+v", rec)
	}
}
