// Package entry defines the opaque content-store entry handle the policy
// engine treats as a non-owning back-pointer. The CS (an external
// collaborator, out of scope here) owns the actual entry; the policy never
// dereferences anything beyond this interface.
package entry

import "github.com/ndn-sim/cs-policy/name"

// Handle identifies one content-store entry. Equality is by handle identity
// (==), not by Name — two Handles for the same Name across a refresh are
// expected to differ. Dereferencing a Handle after the CS has erased the
// entry it refers to is undefined; every policy callback forgets a Handle
// before returning, per the contract in policy.Policy.
type Handle interface {
	// Name returns the entry's immutable name.
	Name() name.Name

	// DataNamePrefix returns the name of the cached Data packet with its
	// final (implicit digest) component dropped. CCPCC keys its per-prefix
	// congestion counters by this value.
	DataNamePrefix() name.Name

	// CongestionMarked reports whether the Data packet that populated this
	// entry carried a congestion mark. CCPCC biases admission and popularity
	// with this bit.
	CongestionMarked() bool
}
