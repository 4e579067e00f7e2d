// Package nname provides a hashed auxiliary index for Name lookups.
//
// The ordered stack and list, the Ghost Map, and the Popularity Queue all
// key their name index by this hash instead of the Name's string form
// directly; within one hash bucket they compare the Name itself. The stack
// and list keep their order in a separate sequence, so hashing changes only
// how find(name) locates a record, not the ordering.
// Grounded on the teacher's XCache.hashKey, which hashes cache keys with
// xxhash for bucket placement.
package nname

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ndn-sim/cs-policy/name"
)

// Hash returns a 64-bit digest of n's canonical string form. Collisions are
// possible (xxhash is not cryptographic); callers that key a map by Hash
// must still compare the Name itself on a hit.
func Hash(n name.Name) uint64 {
	return xxhash.Sum64String(n.String())
}
