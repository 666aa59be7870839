package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color sequences used by the emitter.
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31;1m"
	colorYellow = "\x1b[33;1m"
	colorCyan   = "\x1b[36m"
	colorBold   = "\x1b[1m"
)

// Emitter renders diagnostics to a writer, with ANSI color when the
// writer is an interactive terminal.
type Emitter struct {
	out   io.Writer
	color bool
}

// NewEmitter creates an emitter for the given writer. Color is enabled
// only when the writer is a terminal.
func NewEmitter(out io.Writer) *Emitter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Emitter{out: out, color: color}
}

// SetColor overrides terminal detection.
func (e *Emitter) SetColor(enabled bool) {
	e.color = enabled
}

// Emit writes a single diagnostic.
func (e *Emitter) Emit(d Diagnostic) {
	level := d.Level.String()
	if e.color {
		switch d.Level {
		case LevelError:
			level = colorRed + level + colorReset
		case LevelWarning:
			level = colorYellow + level + colorReset
		default:
			level = colorCyan + level + colorReset
		}
	}

	code := ""
	if d.Code != "" {
		code = "[" + d.Code + "]"
	}

	msg := d.Message
	if e.color {
		msg = colorBold + msg + colorReset
	}

	if d.Span.IsValid() {
		fmt.Fprintf(e.out, "%s%s: %s\n  --> %s\n", level, code, msg, d.Span)
	} else {
		fmt.Fprintf(e.out, "%s%s: %s\n", level, code, msg)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(e.out, "  note: %s\n", note)
	}
}

// EmitAll writes every diagnostic collected by the reporter, followed by
// an error summary line when errors are present.
func (e *Emitter) EmitAll(r *Reporter) {
	for _, d := range r.Diagnostics() {
		e.Emit(d)
	}

	if n := r.ErrorCount(); n > 0 {
		suffix := ""
		if n > 1 {
			suffix = "s"
		}
		fmt.Fprintf(e.out, "aborting due to %d previous error%s\n", n, suffix)
	}
}
