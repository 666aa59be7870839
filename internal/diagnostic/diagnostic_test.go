package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rowan-lang/rowan/internal/position"
)

func spanAt(line int) position.Span {
	return position.NewSpan(
		position.Position{Filename: "test.rw", Line: line, Column: 1, Offset: (line - 1) * 40},
		position.Position{Filename: "test.rw", Line: line, Column: 6, Offset: (line-1)*40 + 5},
	)
}

func TestReporterCounts(t *testing.T) {
	r := NewReporter()
	if r.HasErrors() {
		t.Error("fresh reporter should have no errors")
	}

	r.Report(Diagnostic{Message: "heads up", Level: LevelWarning, Category: CategoryLint})
	if r.HasErrors() {
		t.Error("warnings must not count as errors")
	}

	r.Error(spanAt(1), "E0308", "mismatched types")
	r.Error(spanAt(2), "E0282", "type annotations needed")
	if !r.HasErrors() {
		t.Error("errors not registered")
	}
	if got := r.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
}

func TestReporterDiagnosticsSorted(t *testing.T) {
	r := NewReporter()
	r.Error(spanAt(5), "E0002", "second")
	r.Error(spanAt(1), "E0001", "first")

	diags := r.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("len = %d, want 2", len(diags))
	}
	if diags[0].Code != "E0001" || diags[1].Code != "E0002" {
		t.Errorf("diagnostics not sorted by position: %v, %v", diags[0].Code, diags[1].Code)
	}
}

func TestReporterByCode(t *testing.T) {
	r := NewReporter()
	r.Error(spanAt(1), "E0282", "one")
	r.Error(spanAt(2), "E0308", "two")
	r.Error(spanAt(3), "E0282", "three")

	if got := len(r.ByCode("E0282")); got != 2 {
		t.Errorf("ByCode(E0282) = %d entries, want 2", got)
	}
	if got := len(r.ByCode("E9999")); got != 0 {
		t.Errorf("ByCode(E9999) = %d entries, want 0", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Code:    "E0282",
		Message: "type annotations needed",
		Span:    spanAt(1),
		Level:   LevelError,
	}
	got := d.String()
	for _, part := range []string{"error", "E0282", "type annotations needed", "test.rw:1"} {
		if !strings.Contains(got, part) {
			t.Errorf("String() = %q, missing %q", got, part)
		}
	}
}

func TestEmitter(t *testing.T) {
	r := NewReporter()
	r.Error(spanAt(1), "E0308", "mismatched types")
	r.Error(spanAt(2), "E0282", "type annotations needed")
	r.Report(Diagnostic{
		Message: "unused variable",
		Notes:   []string{"prefix it with an underscore"},
		Span:    spanAt(3),
		Level:   LevelWarning,
	})

	var buf bytes.Buffer
	e := NewEmitter(&buf)
	e.SetColor(false)
	e.EmitAll(r)

	out := buf.String()
	for _, part := range []string{
		"error[E0308]",
		"error[E0282]",
		"warning: unused variable",
		"note: prefix it with an underscore",
		"aborting due to 2 previous errors",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("emitter output missing %q:\n%s", part, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color sequences emitted with color disabled")
	}
}

func TestInternalError(t *testing.T) {
	msg := InternalError(spanAt(4), "no type for node %d", 17)
	if !strings.HasPrefix(msg, "internal compiler error:") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, "no type for node 17") {
		t.Errorf("message not formatted: %q", msg)
	}

	bare := InternalError(position.Span{}, "boom")
	if bare != "internal compiler error: boom" {
		t.Errorf("bare message = %q", bare)
	}
}
