package main

import (
	"fmt"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/metrics"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/policy"
)

// simEntry is the toy CS's own entry type and the policy.Handle it hands the
// policy — simcs is the "CS storage table" spec.md §1 declares external,
// reduced to the minimum needed to drive every policy callback end-to-end.
type simEntry struct {
	n      name.Name
	marked bool
}

func (e *simEntry) Name() name.Name           { return e.n }
func (e *simEntry) DataNamePrefix() name.Name { return e.n.DropLastComponent() }
func (e *simEntry) CongestionMarked() bool    { return e.marked }

// simCS is a minimal ordered-map content store driving one policy, standing
// in for the "CS storage table" external collaborator (spec.md §1/§4.7).
type simCS struct {
	table    map[string]*simEntry
	capacity int
	p        policy.Policy
	m        *metrics.Metrics
}

func newSimCS(typeName string, capacity int, cfg policy.Config) (*simCS, error) {
	cfg.Capacity = capacity
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	p, err := policy.New(typeName, cfg)
	if err != nil {
		return nil, err
	}

	cs := &simCS{
		table:    make(map[string]*simEntry),
		capacity: capacity,
		p:        p,
		m:        cfg.Metrics,
	}

	if setter, ok := p.(interface{ SetOnEvict(policy.EvictFunc) }); ok {
		setter.SetOnEvict(cs.onEvict)
	} else {
		return nil, fmt.Errorf("policy %q does not expose SetOnEvict", typeName)
	}
	return cs, nil
}

// onEvict is the beforeEvict signal handler: delete the entry from the
// table. Must not call back into the policy (spec.md §5).
func (cs *simCS) onEvict(h entry.Handle) {
	delete(cs.table, h.Name().String())
}

// Insert implements the CS's insert path: on a name collision this is an
// afterRefresh; otherwise the entry is inserted into the table unconditionally
// and AfterInsert is called exactly once (spec.md §4.1) — a policy that wants
// to reject the entry (CCPCC) signals that by calling beforeEvict for it from
// within AfterInsert, same as any other eviction.
func (cs *simCS) Insert(n name.Name, congested bool) {
	key := n.String()
	e := &simEntry{n: n, marked: congested}
	if _, exists := cs.table[key]; exists {
		cs.table[key] = e
		cs.p.AfterRefresh(e)
		return
	}

	cs.table[key] = e
	cs.p.AfterInsert(e)
}

// Use implements a lookup: a hit calls BeforeUse and counts toward the hit
// rate; a miss inserts fresh (congested=false, as a cold fetch) and counts
// as a miss.
func (cs *simCS) Use(n name.Name) {
	if _, ok := cs.table[n.String()]; ok {
		cs.m.IncrHit()
		cs.p.BeforeUse(n)
		return
	}
	cs.m.IncrMiss()
	cs.Insert(n, false)
}

// Erase implements an external delete (e.g. TTL expiry in the real CS).
func (cs *simCS) Erase(n name.Name) {
	key := n.String()
	if _, ok := cs.table[key]; !ok {
		return
	}
	delete(cs.table, key)
	cs.p.BeforeErase(n)
}

// Len returns the number of resident entries.
func (cs *simCS) Len() int {
	return len(cs.table)
}
