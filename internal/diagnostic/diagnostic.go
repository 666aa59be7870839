// Diagnostic system for the Rowan compiler.
// Provides error reporting with stable codes, severity levels, and
// source-span anchoring for every message the compiler emits.

package diagnostic

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rowan-lang/rowan/internal/position"
)

// Level represents the severity level of a diagnostic message.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelHint
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelHint:
		return "hint"
	default:
		return "unknown"
	}
}

// LevelFromString parses a level name as written in configuration.
func LevelFromString(s string) (Level, bool) {
	switch s {
	case "error":
		return LevelError, true
	case "warning":
		return LevelWarning, true
	case "info":
		return LevelInfo, true
	case "hint":
		return LevelHint, true
	default:
		return 0, false
	}
}

// Category represents the category of diagnostic.
type Category int

const (
	CategorySyntax Category = iota
	CategoryType
	CategorySemantic
	CategoryLint
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryType:
		return "type"
	case CategorySemantic:
		return "semantic"
	case CategoryLint:
		return "lint"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code     string
	Message  string
	Notes    []string
	Span     position.Span
	Level    Level
	Category Category
}

// String renders the diagnostic in the compiler's one-line format.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Level.String())
	if d.Code != "" {
		sb.WriteString("[" + d.Code + "]")
	}
	sb.WriteString(": " + d.Message)
	if d.Span.IsValid() {
		sb.WriteString(" at " + d.Span.String())
	}
	return sb.String()
}

// Reporter collects diagnostics produced during a compilation.
// It is safe for concurrent use; independent phases may report into the
// same reporter.
type Reporter struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
	errorCount  int
}

// NewReporter creates an empty diagnostic reporter.
func NewReporter() *Reporter {
	return &Reporter{
		diagnostics: make([]Diagnostic, 0),
	}
}

// Report records a diagnostic.
func (r *Reporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.diagnostics = append(r.diagnostics, d)
	if d.Level == LevelError {
		r.errorCount++
	}
}

// Error is a convenience for reporting an error-level diagnostic.
func (r *Reporter) Error(span position.Span, code, message string) {
	r.Report(Diagnostic{
		Code:     code,
		Message:  message,
		Span:     span,
		Level:    LevelError,
		Category: CategoryType,
	})
}

// HasErrors returns true if at least one error-level diagnostic was
// reported.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.errorCount > 0
}

// ErrorCount returns the number of error-level diagnostics reported.
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.errorCount
}

// Diagnostics returns a copy of all reported diagnostics, ordered by
// source position.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start.Before(out[j].Span.Start)
	})

	return out
}

// ByCode returns all diagnostics carrying the given code.
func (r *Reporter) ByCode(code string) []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Diagnostic
	for _, d := range r.diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}

	return out
}

// InternalError formats an internal-consistency failure. Callers panic
// with the result: these indicate bugs in the compiler itself, never in
// the user's program, and there is no recovery.
func InternalError(span position.Span, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if span.IsValid() {
		return fmt.Sprintf("internal compiler error: %s: %s", span, msg)
	}
	return "internal compiler error: " + msg
}
