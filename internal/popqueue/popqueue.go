// Package popqueue implements the Popularity Queue shared by CCP and CCPCC:
// a list of per-entry popularity records, kept in nondecreasing score order
// so eviction is always "pop the front."
package popqueue

import (
	"sort"

	"github.com/davecgh/go-spew/spew"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/nname"
	"github.com/ndn-sim/cs-policy/name"
)

// Record is one entry's decayed popularity score and current-epoch access
// count. Prefix is populated only by CCPCC, which weights congestion
// per name-minus-last-component prefix.
type Record struct {
	Name   name.Name
	Prefix name.Name
	P      float64
	N      uint32
	Entry  entry.Handle
}

// Queue is a Popularity Queue: a slice kept sorted by P ascending, plus a
// hashed name index (the pack's xxhash dependency, same rationale as
// internal/stack) for O(1) lookup on afterRefresh/beforeUse.
type Queue struct {
	records []*Record
	index   map[uint64][]*Record
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{index: make(map[uint64][]*Record)}
}

// Len returns the number of records.
func (q *Queue) Len() int {
	return len(q.records)
}

// Find looks up a record by name.
func (q *Queue) Find(n name.Name) (*Record, bool) {
	h := nname.Hash(n)
	for _, r := range q.index[h] {
		if r.Name.Equal(n) {
			return r, true
		}
	}
	return nil, false
}

// PushBack appends rec at the end of the queue. Callers that need the
// ordering invariant restored immediately should call Sort afterward; CCP's
// afterInsert relies on the queue still being sorted from the prior eviction
// pass and defers the re-sort to evictEntries, matching the source.
func (q *Queue) PushBack(rec *Record) {
	q.records = append(q.records, rec)
	h := nname.Hash(rec.Name)
	q.index[h] = append(q.index[h], rec)
}

// Front returns the lowest-score record without removing it.
func (q *Queue) Front() (*Record, bool) {
	if len(q.records) == 0 {
		return nil, false
	}
	return q.records[0], true
}

// PopFront removes and returns the lowest-score record.
func (q *Queue) PopFront() (*Record, bool) {
	if len(q.records) == 0 {
		return nil, false
	}
	rec := q.records[0]
	q.records = q.records[1:]
	q.removeFromIndex(rec)
	return rec, true
}

// Remove deletes rec from the queue, wherever it sits.
func (q *Queue) Remove(rec *Record) {
	for i, r := range q.records {
		if r == rec {
			q.records = append(q.records[:i], q.records[i+1:]...)
			break
		}
	}
	q.removeFromIndex(rec)
}

func (q *Queue) removeFromIndex(rec *Record) {
	h := nname.Hash(rec.Name)
	bucket := q.index[h]
	for i, r := range bucket {
		if r == rec {
			q.index[h] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(q.index[h]) == 0 {
		delete(q.index, h)
	}
}

// Sort restores nondecreasing P order.
func (q *Queue) Sort() {
	sort.SliceStable(q.records, func(i, j int) bool {
		return q.records[i].P < q.records[j].P
	})
}

// All returns the records in current order, for aging-tick iteration.
func (q *Queue) All() []*Record {
	return q.records
}

// Dump renders the queue's contents for debugging, the replacement for the
// original's print() debug dump of the popularity queue.
func (q *Queue) Dump() string {
	return spew.Sdump(q.records)
}
