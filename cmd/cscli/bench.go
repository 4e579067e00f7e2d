package main

import (
	"fmt"
	"os"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"

	"github.com/ndn-sim/cs-policy/policy"
)

func newBenchCmd() *cobra.Command {
	var (
		capacity  int
		tracePath string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare LIRS/DLIRS/CCP/CCPCC and a golang-lru baseline over one trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(tracePath)
			if err != nil {
				return fmt.Errorf("opening trace: %w", err)
			}
			defer f.Close()

			events, err := parseTrace(f)
			if err != nil {
				return err
			}

			type result struct {
				name    string
				hits    uint64
				misses  uint64
				hitRate float64
				evicts  uint64
			}
			var results []result

			for _, typeName := range policy.Registered() {
				cs, err := newSimCS(typeName, capacity, policy.Config{})
				if err != nil {
					return fmt.Errorf("policy %q: %w", typeName, err)
				}
				replay(cs, events)
				results = append(results, result{
					name:    typeName,
					hits:    cs.m.HitCount(),
					misses:  cs.m.MissCount(),
					hitRate: cs.m.HitRate(),
					evicts:  cs.m.EvictionCount(),
				})
			}

			lruHits, lruMisses, lruEvicts := benchLRUBaseline(capacity, events)
			lruTotal := lruHits + lruMisses
			lruRate := 0.0
			if lruTotal > 0 {
				lruRate = float64(lruHits) / float64(lruTotal)
			}
			results = append(results, result{
				name:    "lru (baseline)",
				hits:    lruHits,
				misses:  lruMisses,
				hitRate: lruRate,
				evicts:  lruEvicts,
			})

			sort.Slice(results, func(i, j int) bool { return results[i].hitRate > results[j].hitRate })

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "capacity=%d events=%d\n", capacity, len(events))
			fmt.Fprintf(w, "%-16s %10s %10s %10s %10s\n", "policy", "hits", "misses", "hit_rate", "evictions")
			for _, r := range results {
				fmt.Fprintf(w, "%-16s %10d %10d %10.4f %10d\n", r.name, r.hits, r.misses, r.hitRate, r.evicts)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 128, "cache capacity")
	cmd.Flags().StringVar(&tracePath, "trace", "", "path to a trace file (required)")
	cmd.MarkFlagRequired("trace")

	return cmd
}

// benchLRUBaseline replays events against a plain golang-lru cache, used
// only as a side-by-side comparison point — never inside the core engine.
func benchLRUBaseline(capacity int, events []event) (hits, misses, evicts uint64) {
	cache, err := lru.New[string, struct{}](maxOne(capacity))
	if err != nil {
		return 0, 0, 0
	}
	for _, ev := range events {
		key := ev.n.String()
		switch ev.op {
		case "insert", "refresh":
			if evicted := cache.Add(key, struct{}{}); evicted {
				evicts++
			}
		case "use":
			if _, ok := cache.Get(key); ok {
				hits++
			} else {
				misses++
				if evicted := cache.Add(key, struct{}{}); evicted {
					evicts++
				}
			}
		case "erase":
			cache.Remove(key)
		}
	}
	return hits, misses, evicts
}

func maxOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
