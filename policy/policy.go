// Package policy defines the CS replacement-policy contract every algorithm
// (lirs, dlirs, ccp, ccpcc) implements, plus the shared Config and the
// string-keyed factory the original NFD_REGISTER_CS_POLICY macro provides in
// C++ and the teacher's CacheBuilder provides in Go via its TYPE_LRU /
// TYPE_LIRS string dispatch.
//
// Concurrency model: a Policy is single-threaded-cooperative. The CS calls
// every method on one goroutine, one call at a time; a Policy must never be
// called re-entrantly (e.g. BeforeEvict must not call back into the Policy
// that raised it). No method here takes a lock or is safe for concurrent
// use — see SPEC_FULL.md §1 for why that's a deliberate, documented choice
// rather than an oversight.
package policy

import (
	"fmt"
	"sort"
	"time"

	"github.com/ndn-sim/cs-policy/entry"
	"github.com/ndn-sim/cs-policy/logging"
	"github.com/ndn-sim/cs-policy/metrics"
	"github.com/ndn-sim/cs-policy/name"
	"github.com/ndn-sim/cs-policy/scheduler"
)

// EvictFunc is the outbound beforeEvict signal: the policy calls it exactly
// once per entry it has decided to evict, synchronously, after it has already
// dropped that entry from its resident bookkeeping. The CS is expected to erase its own entry
// in response; it must not call back into the policy from inside EvictFunc.
type EvictFunc func(h entry.Handle)

// Policy is the replacement-policy contract the content store drives.
// Every method executes synchronously on the CS's single calling goroutine.
type Policy interface {
	// SetLimit sets (or changes) the maximum number of resident entries the
	// policy admits. Implementations that split the budget across internal
	// structures (LIR/HIR, resident/non-resident) recompute that split here.
	SetLimit(maxEntries int)

	// Limit returns the current maximum number of resident entries.
	Limit() int

	// AfterInsert notifies the policy that the CS admitted a brand-new
	// resident entry h (its name was not already resident; it may still be
	// remembered as a ghost, which LIRS, DLIRS and CCPCC act on). The policy may synchronously call evict one or more times
	// before returning if admitting h pushed it over budget.
	AfterInsert(h entry.Handle)

	// AfterRefresh notifies the policy that the CS replaced the content of
	// an already-resident entry in place; h is the new handle for the same
	// name. Unlike AfterInsert this never changes residency and must not
	// trigger eviction.
	AfterRefresh(h entry.Handle)

	// BeforeUse notifies the policy that the CS is about to serve a lookup
	// hit against n, an already-resident name. This is where recency/
	// popularity bookkeeping for a cache hit happens.
	BeforeUse(n name.Name)

	// BeforeErase notifies the policy that the CS is about to remove n for
	// a reason of its own (not an eviction the policy requested): e.g. TTL
	// expiry or an explicit application delete. The policy must not call
	// evict for n. DLIRS drops n from its own bookkeeping here; LIRS, CCP
	// and CCPCC leave their records for n in place.
	BeforeErase(n name.Name)
}

// Config bundles every knob the four policies read. Not every field applies
// to every policy; each policy's constructor validates and defaults the
// subset it uses, mirroring the original's setLimit-driven defaults
// (hirSize_, lirSize_, capacal) computed from Capacity rather than configured
// directly.
type Config struct {
	// Capacity is the maximum number of resident entries, >= 0. Zero
	// disables caching: every inserted entry is evicted at once.
	Capacity int

	// C and T are CCP/CCPCC's aging parameters: every T, each record's score
	// becomes p = (a*n + p) / (a + 1) with a = 1 + C*T (T in seconds), and
	// its access count n is reset to 0. Zero values default to the
	// shipped constants (C=0.5, T=2s) inside ccp.New / ccpcc.New.
	C float64
	T time.Duration

	// Ua and Ub are CCPCC's congestion-weighting coefficients in
	// p = Ua*popularity + Ub*congestion. Zero values default to the shipped
	// constants (Ua=0.5, Ub=0.5) inside ccpcc.New.
	Ua float64
	Ub float64

	// GhostPruneThreshold enables CCPCC's opt-in ghost-map pruning: a ghost
	// record whose decayed P falls below this value is forgotten on the
	// next aging tick. Zero (the default) disables pruning, reproducing the
	// original's unbounded-growth behavior — see SPEC_FULL.md §6.
	GhostPruneThreshold float64

	// Scheduler drives CCP/CCPCC's periodic aging tick. Defaults to
	// scheduler.NewReal() when nil; tests should pass a *scheduler.Manual.
	Scheduler scheduler.Scheduler

	// Metrics receives hit/miss/eviction/reject counts. Defaults to a fresh
	// metrics.New() when nil.
	Metrics *metrics.Metrics

	// Logger receives structured trace/debug output. Defaults to
	// logging.New(name, "info") when nil, where name is the registered
	// policy type string passed to New.
	Logger *logging.Logger
}

// Factory constructs a Policy from a Config. Each policy subpackage
// registers its own Factory from an init() func, mirroring
// NFD_REGISTER_CS_POLICY.
type Factory func(cfg Config) (Policy, error)

var registry = make(map[string]Factory)

// Register adds a Factory under typeName. Called from each policy
// subpackage's init(); panics on duplicate registration since that can only
// indicate a build-time mistake, never a runtime condition.
func Register(typeName string, f Factory) {
	if _, dup := registry[typeName]; dup {
		panic(fmt.Sprintf("policy: duplicate registration for %q", typeName))
	}
	registry[typeName] = f
}

// New constructs the policy registered under typeName (e.g. "lirs", "dlirs",
// "ccp", "ccpcc" — see each subpackage's init()). Returns an error if
// typeName was never registered or the Config fails that policy's
// validation.
func New(typeName string, cfg Config) (Policy, error) {
	f, ok := registry[typeName]
	if !ok {
		return nil, fmt.Errorf("policy: unknown type %q (registered: %s)", typeName, registeredNames())
	}
	return f(cfg)
}

// Registered returns the currently registered type names, sorted.
func Registered() []string {
	return registeredNamesSlice()
}

func registeredNames() string {
	names := registeredNamesSlice()
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func registeredNamesSlice() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
