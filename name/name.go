// Package name implements the hierarchical Name type shared by the content
// store and its replacement policies.
//
// A Name is an ordered sequence of opaque components, joined with "/" in its
// text form (e.g. "/a/b/c"). Names are compared component-wise; the policy
// engine never interprets component bytes itself.
package name

import "strings"

// Name is an immutable, ordered sequence of components.
type Name struct {
	components []string
}

// New builds a Name from a slice of components. The slice is copied.
func New(components ...string) Name {
	cs := make([]string, len(components))
	copy(cs, components)
	return Name{components: cs}
}

// Parse splits a "/"-delimited URI-style string into a Name.
// A leading slash is optional; empty components (from "//" or a trailing
// slash) are dropped.
func Parse(uri string) Name {
	parts := strings.Split(uri, "/")
	cs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			cs = append(cs, p)
		}
	}
	return Name{components: cs}
}

// Len returns the number of components.
func (n Name) Len() int {
	return len(n.components)
}

// Empty reports whether the name has zero components.
func (n Name) Empty() bool {
	return len(n.components) == 0
}

// At returns the i-th component.
func (n Name) At(i int) string {
	return n.components[i]
}

// String renders the Name in "/a/b/c" URI form. The root name renders as "/".
func (n Name) String() string {
	if len(n.components) == 0 {
		return "/"
	}
	return "/" + strings.Join(n.components, "/")
}

// Equal reports whether two Names have identical components.
func (n Name) Equal(other Name) bool {
	if len(n.components) != len(other.components) {
		return false
	}
	for i, c := range n.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether n is a prefix of other (n == other counts).
func (n Name) IsPrefixOf(other Name) bool {
	if len(n.components) > len(other.components) {
		return false
	}
	for i, c := range n.components {
		if c != other.components[i] {
			return false
		}
	}
	return true
}

// DropLastComponent returns the name with its final component removed. It is
// the "name-minus-last-component prefix" CCPCC keys congestion counters by.
// Calling it on an empty name returns an empty name.
func (n Name) DropLastComponent() Name {
	if len(n.components) == 0 {
		return n
	}
	return New(n.components[:len(n.components)-1]...)
}

// Successor returns the lexicographically-next name sharing the same number
// of components: the final component's byte string is incremented as an
// unsigned big-endian integer, carrying into a one-byte-longer component on
// overflow. Successor is used by range-based longest-prefix lookups in the
// CS (an external collaborator); the policy engine itself never calls it, but
// it is kept here because Name's contract in the data model names it.
func (n Name) Successor() Name {
	if len(n.components) == 0 {
		return New("")
	}
	cs := make([]string, len(n.components))
	copy(cs, n.components)
	last := []byte(cs[len(cs)-1])
	cs[len(cs)-1] = string(incrementBytes(last))
	return New(cs...)
}

// incrementBytes treats b as an unsigned big-endian integer and adds one,
// growing by a leading 0x00 byte on overflow.
func incrementBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xff {
			out[i]++
			return out
		}
		out[i] = 0
	}
	return append([]byte{0}, out...)
}
