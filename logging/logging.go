// Package logging provides the structured, level-gated logging every policy
// and the cscli harness use to narrate their own decisions — the Go stand-in
// for the original's commented-out NFD_LOG_INFO / debugToString calls
// (SPEC_FULL.md §5). There is no third-party logging library anywhere in the
// pack's own code (only transitive, never-imported-directly deps pull in
// zap/logrus/go-logr), so this stays stdlib-only, same as
// laplaque-ai-anonymizing-proxy/internal/logger does for its request trace.
// It does not wrap stdlib log: it writes each line straight to an io.Writer,
// and emits logfmt-style key=value pairs rather than fixed-width columns, so
// a line stays parseable by `grep action=` or `awk` regardless of how long
// any one field happens to be.
//
// A line looks like:
//
//	ts=2006-01-02T15:04:05.000Z level=debug module=ccpcc action=afterInsert msg="rejecting /a/b: cur_p=0.1200 <= front.p=0.3000"
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Level is a log severity, lowest to highest.
type Level int

// Severity levels, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String renders l as the lowercase token used in both log lines and
// ParseLevel's input.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a string to a Level, defaulting to LevelInfo for
// anything it doesn't recognize — an unrecognized level string
// should never abort the process, just fall back to the quiet default.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger emits logfmt lines tagged with a fixed module name, gated by a
// minimum severity. It is not safe for concurrent use without external
// synchronization — matching every Policy's single-threaded-cooperative
// calling convention (policy.go's package doc), a Logger is driven by
// whichever single goroutine owns the policy it's attached to.
type Logger struct {
	module string
	min    Level
	out    io.Writer
	now    func() time.Time
}

// New creates a Logger tagged module, gated at the severity named by
// levelStr (see ParseLevel). Output goes to os.Stderr.
func New(module, levelStr string) *Logger {
	return &Logger{
		module: module,
		min:    ParseLevel(levelStr),
		out:    os.Stderr,
		now:    time.Now,
	}
}

// SetLevel changes the minimum level gate at runtime.
func (l *Logger) SetLevel(levelStr string) {
	l.min = ParseLevel(levelStr)
}

// Debug emits a line tagged action at LevelDebug, the per-branch trace every
// policy's AfterInsert/ageTick uses to narrate which path it took.
func (l *Logger) Debug(action, msg string) { l.emit(LevelDebug, action, msg) }

// Debugf formats msg before logging it at LevelDebug.
func (l *Logger) Debugf(action, format string, args ...any) {
	l.Debug(action, fmt.Sprintf(format, args...))
}

// Info emits a line tagged action at LevelInfo.
func (l *Logger) Info(action, msg string) { l.emit(LevelInfo, action, msg) }

// Infof formats msg before logging it at LevelInfo.
func (l *Logger) Infof(action, format string, args ...any) {
	l.Info(action, fmt.Sprintf(format, args...))
}

// Warn emits a line tagged action at LevelWarn — used for the "callback with
// unknown name" error category (SPEC_FULL.md §7): logged and ignored, never
// fatal, since a stale handle reaching a policy callback is recoverable.
func (l *Logger) Warn(action, msg string) { l.emit(LevelWarn, action, msg) }

// Warnf formats msg before logging it at LevelWarn.
func (l *Logger) Warnf(action, format string, args ...any) {
	l.Warn(action, fmt.Sprintf(format, args...))
}

// Error emits a line tagged action at LevelError.
func (l *Logger) Error(action, msg string) { l.emit(LevelError, action, msg) }

// Errorf formats msg before logging it at LevelError.
func (l *Logger) Errorf(action, format string, args ...any) {
	l.Error(action, fmt.Sprintf(format, args...))
}

// Fatal emits a line at LevelError and terminates the process — reserved for
// the "programming contract violation" category (SPEC_FULL.md §7), where a
// broken invariant means a bug in the caller, not a condition to recover
// from.
func (l *Logger) Fatal(action, msg string) {
	l.Error(action, msg)
	os.Exit(1)
}

// Fatalf formats msg before logging it at LevelError and terminating.
func (l *Logger) Fatalf(action, format string, args ...any) {
	l.Fatal(action, fmt.Sprintf(format, args...))
}

func (l *Logger) emit(level Level, action, msg string) {
	if level < l.min {
		return
	}
	var b strings.Builder
	b.WriteString("ts=")
	b.WriteString(l.now().UTC().Format("2006-01-02T15:04:05.000Z"))
	b.WriteString(" level=")
	b.WriteString(level.String())
	b.WriteString(" module=")
	b.WriteString(field(l.module))
	b.WriteString(" action=")
	b.WriteString(field(action))
	b.WriteString(" msg=")
	b.WriteString(strconv.Quote(msg))
	b.WriteByte('\n')
	io.WriteString(l.out, b.String())
}

// field renders a bareword logfmt value, quoting it only if it contains a
// space, a tab, a double quote, or an '=' that would otherwise split the pair.
func field(s string) string {
	if strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}
