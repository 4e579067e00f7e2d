package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndn-sim/cs-policy/policy"

	_ "github.com/ndn-sim/cs-policy/policy/ccp"
	_ "github.com/ndn-sim/cs-policy/policy/ccpcc"
	_ "github.com/ndn-sim/cs-policy/policy/dlirs"
	_ "github.com/ndn-sim/cs-policy/policy/lirs"
)

const sampleTrace = `
# warm the cache, then thrash it
insert /a
insert /b
insert /c
use /a
use /a
insert /d
insert /e
use /a
erase /b
insert /f
`

func TestParseTraceSkipsCommentsAndBlanks(t *testing.T) {
	events, err := parseTrace(strings.NewReader(sampleTrace))
	require.NoError(t, err)
	assert.Len(t, events, 10)
	assert.Equal(t, "insert", events[0].op)
	assert.Equal(t, "/a", events[0].n.String())
}

func TestParseTraceRejectsUnknownOp(t *testing.T) {
	_, err := parseTrace(strings.NewReader("frobnicate /a\n"))
	assert.Error(t, err)
}

func TestReplayEveryPolicy(t *testing.T) {
	events, err := parseTrace(strings.NewReader(sampleTrace))
	require.NoError(t, err)

	for _, typeName := range policy.Registered() {
		t.Run(typeName, func(t *testing.T) {
			cs, err := newSimCS(typeName, 4, policy.Config{})
			require.NoError(t, err)

			replay(cs, events)

			assert.LessOrEqual(t, cs.Len(), 4, "resident count must not exceed capacity")
			assert.Greater(t, cs.m.LookupCount(), uint64(0), "at least one use event should be counted")
		})
	}
}

func TestCongestionMarkedInsertParses(t *testing.T) {
	events, err := parseTrace(strings.NewReader("insert /a cong\ninsert /b\n"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].congested)
	assert.False(t, events[1].congested)
}
