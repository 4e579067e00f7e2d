package name

import "testing"

func TestParseAndString(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"/a/b/c", "/a/b/c"},
		{"a/b/c", "/a/b/c"},
		{"/", "/"},
		{"", "/"},
		{"/a//b/", "/a/b"},
	}
	for _, tc := range cases {
		got := Parse(tc.uri).String()
		if got != tc.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Parse("/a/b")
	b := New("a", "b")
	c := Parse("/a/b/c")
	if !a.Equal(b) {
		t.Error("expected equal names to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different-length names to compare unequal")
	}
}

func TestIsPrefixOf(t *testing.T) {
	root := Parse("/a")
	full := Parse("/a/b/c")
	other := Parse("/x/y")
	if !root.IsPrefixOf(full) {
		t.Error("expected /a to be a prefix of /a/b/c")
	}
	if !full.IsPrefixOf(full) {
		t.Error("a name should be a prefix of itself")
	}
	if root.IsPrefixOf(other) {
		t.Error("did not expect /a to be a prefix of /x/y")
	}
}

func TestDropLastComponent(t *testing.T) {
	n := Parse("/a/b/c")
	got := n.DropLastComponent().String()
	if got != "/a/b" {
		t.Errorf("DropLastComponent() = %q, want /a/b", got)
	}

	root := New()
	if got := root.DropLastComponent(); !got.Equal(root) {
		t.Errorf("DropLastComponent() on empty name should stay empty, got %q", got.String())
	}
}

func TestSuccessor(t *testing.T) {
	n := Parse("/a/b")
	succ := n.Successor()
	if succ.Equal(n) {
		t.Error("Successor() must differ from its input")
	}
	if succ.Len() != n.Len() {
		t.Errorf("Successor() changed component count: %d vs %d", succ.Len(), n.Len())
	}
}
