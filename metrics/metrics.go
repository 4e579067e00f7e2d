// Package metrics provides per-CS instance hit/miss/eviction counters.
//
// The original source keeps process-wide hit/miss counters and a
// "training complete" flag as module-level mutable state; the design notes
// call that out for re-architecture as per-CS instance metrics owned by the
// CS, not the policy, and exposed through a metrics-consumer interface. This
// mirrors the teacher's own `stats` type (HitCount/MissCount/HitRate on
// XCache) and the atomic-counter style of
// laplaque-ai-anonymizing-proxy/internal/metrics, without the proxy's
// latency histograms, which have no analogue here.
package metrics

import "sync/atomic"

// Metrics holds the running counters for one content store instance.
// The zero value is ready to use.
type Metrics struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	rejects   atomic.Uint64 // CCPCC admission-test rejections
}

// New returns a ready-to-use Metrics.
func New() *Metrics {
	return &Metrics{}
}

// IncrHit records a cache hit.
func (m *Metrics) IncrHit() { m.hits.Add(1) }

// IncrMiss records a cache miss.
func (m *Metrics) IncrMiss() { m.misses.Add(1) }

// IncrEviction records one beforeEvict signal handled.
func (m *Metrics) IncrEviction() { m.evictions.Add(1) }

// IncrReject records one CCPCC admission-test rejection.
func (m *Metrics) IncrReject() { m.rejects.Add(1) }

// HitCount returns the running hit count.
func (m *Metrics) HitCount() uint64 { return m.hits.Load() }

// MissCount returns the running miss count.
func (m *Metrics) MissCount() uint64 { return m.misses.Load() }

// EvictionCount returns the running eviction count.
func (m *Metrics) EvictionCount() uint64 { return m.evictions.Load() }

// RejectCount returns the running CCPCC admission-rejection count.
func (m *Metrics) RejectCount() uint64 { return m.rejects.Load() }

// LookupCount returns hits + misses.
func (m *Metrics) LookupCount() uint64 { return m.hits.Load() + m.misses.Load() }

// HitRate returns hits / (hits + misses), or 0 if there have been no
// lookups yet.
func (m *Metrics) HitRate() float64 {
	total := m.LookupCount()
	if total == 0 {
		return 0
	}
	return float64(m.hits.Load()) / float64(total)
}
