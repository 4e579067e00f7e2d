package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for s, want := range cases {
		if got := ParseLevel(s); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warn",
		LevelError: "error",
	}
	for l, want := range cases {
		if got := l.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(l), got, want)
		}
		if ParseLevel(l.String()) != l {
			t.Errorf("ParseLevel(%v.String()) round-trip failed", l)
		}
	}
}

func TestSetLevelGates(t *testing.T) {
	l := New("test", "error")
	if l.min != LevelError {
		t.Fatalf("New should gate at error, got %v", l.min)
	}
	l.SetLevel("debug")
	if l.min != LevelDebug {
		t.Errorf("SetLevel should update the gate, got %v", l.min)
	}
}

func TestEmitFormatsLogfmt(t *testing.T) {
	var buf bytes.Buffer
	l := New("ccpcc", "debug")
	l.out = &buf

	l.Debugf("afterInsert", "rejecting %s: cur_p=%.2f", "/a/b", 0.5)

	line := buf.String()
	for _, want := range []string{"level=debug", "module=ccpcc", "action=afterInsert", `msg="rejecting /a/b: cur_p=0.50"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestEmitGatesBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("lirs", "warn")
	l.out = &buf

	l.Debug("use", "should not appear")
	if buf.Len() != 0 {
		t.Fatalf("Debug below the warn gate should not write anything, got %q", buf.String())
	}

	l.Warn("use", "should appear")
	if buf.Len() == 0 {
		t.Fatal("Warn at the warn gate should write a line")
	}
}

func TestFieldQuotesWhenNeeded(t *testing.T) {
	if got := field("bareword"); got != "bareword" {
		t.Errorf("field(bareword) = %q, want unquoted", got)
	}
	if got := field("has space"); got != `"has space"` {
		t.Errorf("field(with space) = %q, want quoted", got)
	}
}
