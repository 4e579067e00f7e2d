// Command cscli is a trace-replay simulator for the CS replacement-policy
// engine: it owns a toy content store, wires one policy, and replays a text
// trace of insert/refresh/use/erase events, reporting hit rate and eviction
// counts. It stands in for the "simulation/host harness" spec.md declares an
// external collaborator, grounded on newbthenewbd-btrfs-rec's cobra-based
// cmd/btrfs-rec command tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/ndn-sim/cs-policy/policy/ccp"
	_ "github.com/ndn-sim/cs-policy/policy/ccpcc"
	_ "github.com/ndn-sim/cs-policy/policy/dlirs"
	_ "github.com/ndn-sim/cs-policy/policy/lirs"
)

func main() {
	root := &cobra.Command{
		Use:           "cscli",
		Short:         "Replay traces against the CS replacement-policy engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newBenchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cscli:", err)
		os.Exit(1)
	}
}
