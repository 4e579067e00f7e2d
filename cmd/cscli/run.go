package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndn-sim/cs-policy/logging"
	"github.com/ndn-sim/cs-policy/policy"
)

func newRunCmd() *cobra.Command {
	var (
		typeName   string
		capacity   int
		tracePath  string
		c, ua, ub  float64
		tSeconds   float64
		ghostPrune float64
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a trace file against one policy and print hit-rate stats",
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

			level := "warn"
			if verbosity == 1 {
				level = "info"
			}
			if verbosity >= 2 {
				level = "debug"
			}

			cfg := policy.Config{
				Capacity:            capacity,
				C:                   c,
				T:                   time.Duration(tSeconds * float64(time.Second)),
				Ua:                  ua,
				Ub:                  ub,
				GhostPruneThreshold: ghostPrune,
				Logger:              logging.New(typeName, level),
			}

			cs, err := newSimCS(typeName, capacity, cfg)
			if err != nil {
				return err
			}
			replay(cs, events)

			fmt.Fprintf(cmd.OutOrStdout(), "policy=%s capacity=%d events=%d resident=%d\n",
				typeName, capacity, len(events), cs.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "hits=%d misses=%d hit_rate=%.4f evictions=%d rejects=%d\n",
				cs.m.HitCount(), cs.m.MissCount(), cs.m.HitRate(), cs.m.EvictionCount(), cs.m.RejectCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "policy", "lirs", "policy type: lirs, dlirs, ccp, ccpcc")
	cmd.Flags().IntVar(&capacity, "capacity", 128, "cache capacity")
	cmd.Flags().StringVar(&tracePath, "trace", "", "path to a trace file (required)")
	cmd.Flags().Float64Var(&c, "c", 0, "CCP/CCPCC decay weight (0 = policy default)")
	cmd.Flags().Float64Var(&tSeconds, "t", 0, "CCP/CCPCC aging epoch in seconds (0 = policy default)")
	cmd.Flags().Float64Var(&ua, "ua", 0, "CCPCC popularity weight (0 = policy default)")
	cmd.Flags().Float64Var(&ub, "ub", 0, "CCPCC congestion weight (0 = policy default)")
	cmd.Flags().Float64Var(&ghostPrune, "ghost-prune-threshold", 0, "CCPCC ghost-prune threshold (0 = disabled)")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv)")
	cmd.MarkFlagRequired("trace")

	return cmd
}
