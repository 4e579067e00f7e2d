package popqueue

import (
	"testing"

	"github.com/ndn-sim/cs-policy/name"
)

func TestPushFindPop(t *testing.T) {
	q := New()
	a := &Record{Name: name.Parse("/a"), P: 0.5}
	b := &Record{Name: name.Parse("/b"), P: 0.1}
	q.PushBack(a)
	q.PushBack(b)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	found, ok := q.Find(name.Parse("/b"))
	if !ok || found != b {
		t.Error("expected to find /b by name")
	}

	front, _ := q.Front()
	if front != a {
		t.Error("Front() should return the first pushed record until sorted")
	}

	q.Sort()
	front, _ = q.Front()
	if front != b {
		t.Error("after Sort, Front() should return the lowest-P record")
	}

	popped, ok := q.PopFront()
	if !ok || popped != b {
		t.Error("PopFront should remove and return the lowest-P record")
	}
	if q.Len() != 1 {
		t.Errorf("Len() after pop = %d, want 1", q.Len())
	}
	if _, ok := q.Find(name.Parse("/b")); ok {
		t.Error("/b should no longer be findable after PopFront")
	}
}

func TestRemove(t *testing.T) {
	q := New()
	a := &Record{Name: name.Parse("/a"), P: 0.2}
	b := &Record{Name: name.Parse("/b"), P: 0.9}
	q.PushBack(a)
	q.PushBack(b)

	q.Remove(a)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if _, ok := q.Find(name.Parse("/a")); ok {
		t.Error("/a should be gone after Remove")
	}
}

func TestDumpContainsNames(t *testing.T) {
	q := New()
	q.PushBack(&Record{Name: name.Parse("/a"), P: 0.5})
	if dump := q.Dump(); dump == "" {
		t.Error("Dump() should not be empty for a non-empty queue")
	}
}

func TestSortOrdering(t *testing.T) {
	q := New()
	vals := []float64{3, 1, 2, 0.5}
	for i, v := range vals {
		q.PushBack(&Record{Name: name.Parse(string(rune('a' + i))), P: v})
	}
	q.Sort()
	all := q.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].P > all[i].P {
			t.Fatalf("queue not sorted ascending: %v", all)
		}
	}
}
