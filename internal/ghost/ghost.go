// Package ghost implements CCPCC's Ghost Map: a name -> remembered score
// mapping for entries that have been evicted but are still tracked so a
// later re-insertion can resume from their decayed history instead of
// starting cold.
package ghost

import (
	"github.com/ndn-sim/cs-policy/internal/nname"
	"github.com/ndn-sim/cs-policy/name"
)

// Record is a remembered {p, n} pair for a non-resident name.
type Record struct {
	Name name.Name
	P    float64
	N    uint32
}

// Map is the Ghost Map. Disjoint from the popularity queue by name (an
// entry is either resident and in the queue, or evicted and here, never
// both).
type Map struct {
	index map[uint64][]*Record
	count int
}

// New returns an empty Map.
func New() *Map {
	return &Map{index: make(map[uint64][]*Record)}
}

// Len returns the number of ghost records.
func (m *Map) Len() int {
	return m.count
}

// Get returns the ghost record for n, if any.
func (m *Map) Get(n name.Name) (Record, bool) {
	h := nname.Hash(n)
	for _, r := range m.index[h] {
		if r.Name.Equal(n) {
			return *r, true
		}
	}
	return Record{}, false
}

// Put inserts or overwrites the ghost record for n.
func (m *Map) Put(n name.Name, p float64, count uint32) {
	h := nname.Hash(n)
	for _, r := range m.index[h] {
		if r.Name.Equal(n) {
			r.P = p
			r.N = count
			return
		}
	}
	m.index[h] = append(m.index[h], &Record{Name: n, P: p, N: count})
	m.count++
}

// Delete removes the ghost record for n, if present.
func (m *Map) Delete(n name.Name) {
	h := nname.Hash(n)
	bucket := m.index[h]
	for i, r := range bucket {
		if r.Name.Equal(n) {
			m.index[h] = append(bucket[:i], bucket[i+1:]...)
			m.count--
			break
		}
	}
	if len(m.index[h]) == 0 {
		delete(m.index, h)
	}
}

// Take returns the ghost record for n and removes it in one step — the
// afterInsert "take history and forget it" sequence CCPCC needs.
func (m *Map) Take(n name.Name) (Record, bool) {
	rec, ok := m.Get(n)
	if ok {
		m.Delete(n)
	}
	return rec, ok
}

// Each iterates every ghost record, for the aging tick. The callback may
// mutate the record's P/N fields in place; it must not call into Map.
func (m *Map) Each(fn func(*Record)) {
	for _, bucket := range m.index {
		for _, r := range bucket {
			fn(r)
		}
	}
}

// Prune removes every ghost record whose P has decayed below threshold.
// A threshold <= 0 disables pruning (the shipped CCPCC behavior, where
// ghosts grow without bound — see the GhostPruneThreshold config knob).
func (m *Map) Prune(threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	pruned := 0
	for h, bucket := range m.index {
		kept := bucket[:0]
		for _, r := range bucket {
			if r.P < threshold {
				pruned++
				m.count--
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == 0 {
			delete(m.index, h)
		} else {
			m.index[h] = kept
		}
	}
	return pruned
}
