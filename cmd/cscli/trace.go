package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ndn-sim/cs-policy/name"
)

// event is one line of a replay trace: "<op> <name> [cong]", e.g.
//
//	insert /a/b/c
//	insert /a/b/d cong
//	use /a/b/c
//	refresh /a/b/c
//	erase /a/b/c
//
// Blank lines and lines starting with "#" are ignored.
type event struct {
	op        string
	n         name.Name
	congested bool
}

// parseTrace reads a trace file into a slice of events.
func parseTrace(r io.Reader) ([]event, error) {
	var events []event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("trace line %d: want \"<op> <name> [cong]\", got %q", lineNo, line)
		}
		op := strings.ToLower(fields[0])
		switch op {
		case "insert", "use", "refresh", "erase":
		default:
			return nil, fmt.Errorf("trace line %d: unknown op %q", lineNo, fields[0])
		}
		congested := len(fields) >= 3 && strings.EqualFold(fields[2], "cong")
		events = append(events, event{op: op, n: name.Parse(fields[1]), congested: congested})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return events, nil
}

// replay drives cs through every event in events.
func replay(cs *simCS, events []event) {
	for _, ev := range events {
		switch ev.op {
		case "insert":
			cs.Insert(ev.n, ev.congested)
		case "use":
			cs.Use(ev.n)
		case "refresh":
			cs.Insert(ev.n, ev.congested) // Insert already branches new-vs-collision
		case "erase":
			cs.Erase(ev.n)
		}
	}
}
