// Package stack implements the Ordered Stack (S) and Resident-HIR List (Q)
// shared by the LIRS and DLIRS policies.
//
// Both containers are the same underlying ordered sequence of records,
// exactly as the data model describes them; Stack adds stack_pruning and
// erase_k_nhir on top. The sequence is a container/list.List — the same
// choice the teacher's LIRSCache makes for its stack and queue — paired with
// a hashed auxiliary index (internal/nname) for O(1) find, rather than the
// plain linear scan the data model says is "adequate" at typical sizes; the
// design notes explicitly allow this without changing semantics.
package stack

import (
	"container/list"

	"github.com/davecgh/go-spew/spew"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/internal/nname"
	"github.com/ndn-sim/cs-policy/name"
)

// State is an entry's role in the LIRS/DLIRS state machine.
type State int

const (
	// LIR entries are resident and "low inter-reference recency" — hot.
	LIR State = iota
	// RHIR entries are resident HIR: in the list Q, and in the stack if reachable.
	RHIR
	// NHIR entries are non-resident HIR: a ghost, present only in the stack.
	NHIR
)

func (s State) String() string {
	switch s {
	case LIR:
		return "LIR"
	case RHIR:
		return "RHIR"
	case NHIR:
		return "NHIR"
	default:
		return "invalid"
	}
}

// Record is one (name, state) pair, optionally paired with a resident
// entry.Handle. Entry is nil for ghost (non-resident) records.
type Record struct {
	Name    name.Name
	State   State
	Demoted bool
	Entry   entry.Handle
}

// Location identifies a Record's position for O(1) re-use after Find.
// It is opaque to callers outside this package.
type Location struct {
	elem *list.Element
}

// Valid reports whether a Location refers to a live position.
func (l Location) Valid() bool {
	return l.elem != nil
}

// Ordered is a sequence of Records supporting the operations the data model
// names: find, push_back, pop_front, erase_at, move_to_top, get_bottom,
// get_top, state_at, set_state_at, set_demoted_at.
//
// Convention: push_back appends at the "back", which is this container's
// top/most-recent end; pop_front removes from the "front", the bottom/oldest
// end. get_bottom reads the front; get_top reads the back.
type Ordered struct {
	order *list.List
	index map[uint64][]*list.Element
}

// New returns an empty Ordered container.
func New() *Ordered {
	return &Ordered{
		order: list.New(),
		index: make(map[uint64][]*list.Element),
	}
}

// Len returns the number of records.
func (o *Ordered) Len() int {
	return o.order.Len()
}

// Find looks up a record by name. Returns the zero Location and false if
// absent.
func (o *Ordered) Find(n name.Name) (Location, bool) {
	h := nname.Hash(n)
	for _, e := range o.index[h] {
		if e.Value.(*Record).Name.Equal(n) {
			return Location{elem: e}, true
		}
	}
	return Location{}, false
}

// RecordAt dereferences a Location.
func (o *Ordered) RecordAt(loc Location) *Record {
	return loc.elem.Value.(*Record)
}

// PushBack appends rec at the back (top/most-recent end) and returns its
// Location.
func (o *Ordered) PushBack(rec *Record) Location {
	e := o.order.PushBack(rec)
	h := nname.Hash(rec.Name)
	o.index[h] = append(o.index[h], e)
	return Location{elem: e}
}

// PopFront removes and returns the record at the front (bottom/oldest end).
// Returns false if empty.
func (o *Ordered) PopFront() (*Record, bool) {
	front := o.order.Front()
	if front == nil {
		return nil, false
	}
	o.EraseAt(Location{elem: front})
	return front.Value.(*Record), true
}

// GetBottom returns the front record and its Location without removing it.
func (o *Ordered) GetBottom() (*Record, Location, bool) {
	front := o.order.Front()
	if front == nil {
		return nil, Location{}, false
	}
	return front.Value.(*Record), Location{elem: front}, true
}

// GetTop returns the back record and its Location without removing it.
func (o *Ordered) GetTop() (*Record, Location, bool) {
	back := o.order.Back()
	if back == nil {
		return nil, Location{}, false
	}
	return back.Value.(*Record), Location{elem: back}, true
}

// EraseAt removes the record at loc.
func (o *Ordered) EraseAt(loc Location) {
	rec := loc.elem.Value.(*Record)
	h := nname.Hash(rec.Name)
	bucket := o.index[h]
	for i, e := range bucket {
		if e == loc.elem {
			o.index[h] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(o.index[h]) == 0 {
		delete(o.index, h)
	}
	o.order.Remove(loc.elem)
}

// MoveToTop removes the record at loc and re-inserts it at the back (top),
// updating its resident Entry handle (handles may change across a refresh
// that replaced the CS entry). Returns the new Location.
func (o *Ordered) MoveToTop(loc Location, newEntry entry.Handle) Location {
	rec := loc.elem.Value.(*Record)
	rec.Entry = newEntry
	if o.order.Back() == loc.elem {
		return loc
	}
	o.EraseAt(loc)
	return o.PushBack(rec)
}

// StateAt returns the state of the record at loc.
func (o *Ordered) StateAt(loc Location) State {
	return loc.elem.Value.(*Record).State
}

// SetStateAt sets the state of the record at loc.
func (o *Ordered) SetStateAt(loc Location, s State) {
	loc.elem.Value.(*Record).State = s
}

// SetDemotedAt sets the demoted bit of the record at loc.
func (o *Ordered) SetDemotedAt(loc Location, demoted bool) {
	loc.elem.Value.(*Record).Demoted = demoted
}

// Records returns the container's records in front-to-back order. Callers
// must not mutate the returned slice's backing Records beyond the State/
// Demoted fields; structural changes must go through EraseAt/PushBack.
func (o *Ordered) Records() []*Record {
	records := make([]*Record, 0, o.order.Len())
	for e := o.order.Front(); e != nil; e = e.Next() {
		records = append(records, e.Value.(*Record))
	}
	return records
}

// Dump renders the container's contents for debugging, grounded on the
// struct-pretty-printing style btrfs-rec's textui package uses go-spew for.
func (o *Ordered) Dump() string {
	records := make([]*Record, 0, o.order.Len())
	for e := o.order.Front(); e != nil; e = e.Next() {
		records = append(records, e.Value.(*Record))
	}
	return spew.Sdump(records)
}

// Stack is the primary Ordered Stack (S): an Ordered container plus
// stack_pruning and erase_k_nhir.
type Stack struct {
	*Ordered
}

// NewStack returns an empty Stack.
func NewStack() *Stack {
	return &Stack{Ordered: New()}
}

// Pruning repeatedly erases the bottom entry while it is not in state LIR.
// Returns the number of NHIR records erased, which the caller (DLIRS) uses
// to decrement its non-resident-HIR counter. After Pruning, the bottom is
// LIR or the stack is empty.
func (s *Stack) Pruning() int {
	erasedNHIR := 0
	for {
		rec, loc, ok := s.GetBottom()
		if !ok || rec.State == LIR {
			break
		}
		if rec.State == NHIR {
			erasedNHIR++
		}
		s.EraseAt(loc)
	}
	return erasedNHIR
}

// EraseKNHIR bulk-removes up to k non-resident-HIR records from any position
// in the stack. Used by DLIRS to reclaim ghost slots once the stack exceeds
// its 2x-capacity budget. Returns the number actually erased.
func (s *Stack) EraseKNHIR(k int) int {
	if k <= 0 {
		return 0
	}
	erased := 0
	e := s.order.Front()
	for e != nil && erased < k {
		next := e.Next()
		if e.Value.(*Record).State == NHIR {
			s.EraseAt(Location{elem: e})
			erased++
		}
		e = next
	}
	return erased
}

// List is the Resident-HIR List (Q): a plain FIFO Ordered container. Every
// record in a List is resident (RHIR).
type List struct {
	*Ordered
}

// NewList returns an empty List.
func NewList() *List {
	return &List{Ordered: New()}
}

// FindAndRemove erases the record named n if present. A no-op otherwise.
func (l *List) FindAndRemove(n name.Name) {
	if loc, ok := l.Find(n); ok {
		l.EraseAt(loc)
	}
}
