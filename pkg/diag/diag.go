// Package diag is the diagnostic channel for configuration warnings.
//
// Warnings never abort anything: the caller always continues with a
// defined fallback after reporting.
package diag

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Reporter receives non-fatal configuration warnings
type Reporter interface {
	Warn(message, hint string)
}

// Warning is a single reported diagnostic
type Warning struct {
	Message string
	Hint    string
}

// LogReporter writes warnings through charmbracelet/log
type LogReporter struct {
	logger *log.Logger
}

// LogReporterParams configures a LogReporter
type LogReporterParams struct {
	Output io.Writer
	Debug  bool
	Prefix string
}

// NewLogReporter creates a reporter writing to params.Output (stderr when nil)
func NewLogReporter(params LogReporterParams) *LogReporter {
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	level := log.WarnLevel
	if params.Debug {
		level = log.DebugLevel
	}
	prefix := params.Prefix
	if prefix == "" {
		prefix = "unfriendly chart"
	}
	return &LogReporter{
		logger: log.NewWithOptions(out, log.Options{
			Level:  level,
			Prefix: prefix,
		}),
	}
}

// Logger exposes the underlying logger for debug output
func (r *LogReporter) Logger() *log.Logger {
	return r.logger
}

// Warn logs message at WARN level, with the remediation hint when given
func (r *LogReporter) Warn(message, hint string) {
	if hint == "" {
		r.logger.Warn(message)
		return
	}
	r.logger.Warn(message, "hint", hint)
}

var (
	defaultMu       sync.RWMutex
	defaultReporter Reporter = NewLogReporter(LogReporterParams{})
)

// Default returns the process-wide reporter
func Default() Reporter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultReporter
}

// SetDefault replaces the process-wide reporter. A nil reporter discards warnings.
func SetDefault(r Reporter) {
	if r == nil {
		r = Discard{}
	}
	defaultMu.Lock()
	defaultReporter = r
	defaultMu.Unlock()
}

// Or returns r, or the process-wide reporter when r is nil
func Or(r Reporter) Reporter {
	if r != nil {
		return r
	}
	return Default()
}

// Discard drops every warning
type Discard struct{}

func (Discard) Warn(string, string) {}

// Recorder keeps warnings in memory. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn records the warning
func (r *Recorder) Warn(message, hint string) {
	r.mu.Lock()
	r.warnings = append(r.warnings, Warning{Message: message, Hint: hint})
	r.mu.Unlock()
}

// Warnings returns a copy of everything recorded so far
func (r *Recorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len returns the number of recorded warnings
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

// Reset clears recorded warnings
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.warnings = nil
	r.mu.Unlock()
}
