package loc

import (
	"fmt"
	"io"
	"strings"
)

// A Level is the severity of a Diagnostic.
type Level int

// The diagnostic severities, in increasing order of severity.
const (
	Info Level = iota
	Warning
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// A Diagnostic is a single reported problem, anchored to a source Range.
type Diagnostic struct {
	Level   Level
	Range   Range
	Message string
	// Lexeme is the offending token's source text, used only to size
	// the underline when rendering. Empty means "underline one byte".
	Lexeme string
}

// A Bag accumulates diagnostics over the whole compilation pipeline so
// components can keep going after an error instead of aborting the
// entire run. Rendering happens once, at the end (or on a fatal abort),
// and never mutates the Bag.
type Bag struct {
	Files *Files
	diags []Diagnostic

	errors   int
	warnings int
}

// NewBag returns a Bag that resolves diagnostic locations against files.
func NewBag(files *Files) *Bag { return &Bag{Files: files} }

// Report appends a diagnostic. Any level other than Warning and Info
// sets the has-errors flag consulted by HasErrors.
func (b *Bag) Report(level Level, r Range, format string, args ...interface{}) {
	d := Diagnostic{Level: level, Range: r, Message: fmt.Sprintf(format, args...)}
	b.diags = append(b.diags, d)
	b.tally(level)
}

// ReportToken is like Report but also records the offending lexeme so
// the underline can be sized to it.
func (b *Bag) ReportToken(level Level, r Range, lexeme, format string, args ...interface{}) {
	d := Diagnostic{Level: level, Range: r, Message: fmt.Sprintf(format, args...), Lexeme: lexeme}
	b.diags = append(b.diags, d)
	b.tally(level)
}

func (b *Bag) tally(level Level) {
	switch level {
	case Warning:
		b.warnings++
	case Info:
	default:
		b.errors++
	}
}

// HasErrors reports whether any non-warning, non-info diagnostic has
// been recorded.
func (b *Bag) HasErrors() bool { return b.errors > 0 }

// ErrorCount returns the number of error/fatal diagnostics recorded.
func (b *Bag) ErrorCount() int { return b.errors }

// WarningCount returns the number of warning diagnostics recorded.
func (b *Bag) WarningCount() int { return b.warnings }

// Diagnostics returns the accumulated diagnostics in the order reported.
func (b *Bag) Diagnostics() []Diagnostic { return append([]Diagnostic(nil), b.diags...) }

// A ColorMode controls whether RenderAll emits ANSI color codes.
type ColorMode int

const (
	// ColorAuto enables color only when the destination is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// IsTerminalFunc is called by RenderAll under ColorAuto to decide
// whether w is a terminal. It is a package variable, not a parameter,
// so callers that don't care about color (tests, library embedders)
// don't have to thread a detector through every call site; cmd/pangeac
// overrides it once at startup using golang.org/x/term.
var IsTerminalFunc = func(w io.Writer) bool { return false }

// RenderAll writes every accumulated diagnostic to w, in the order
// reported, each as a level line, a "--> file:line:col" pointer, the
// offending source line, and an underline. Rendering never mutates the
// Bag and may be called repeatedly.
func (b *Bag) RenderAll(w io.Writer, mode ColorMode) {
	color := mode == ColorAlways || (mode == ColorAuto && IsTerminalFunc(w))
	for _, d := range b.diags {
		renderOne(w, b.Files, d, color)
	}
}

var levelColor = map[Level]string{
	Info:    "\x1b[36m", // cyan
	Warning: "\x1b[33m", // yellow
	Error:   "\x1b[31m", // red
	Fatal:   "\x1b[1;31m",
}

const colorReset = "\x1b[0m"

func renderOne(w io.Writer, files *Files, d Diagnostic, color bool) {
	level := d.Level.String()
	if color {
		fmt.Fprintf(w, "%s%s%s: %s\n", levelColor[d.Level], level, colorReset, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s\n", level, d.Message)
	}

	if files == nil {
		return
	}
	l := files.Loc(d.Range)
	if l.Path == "" {
		return
	}
	fmt.Fprintf(w, "  --> %s\n", l)

	src := files.Source(d.Range[0])
	if src == "" {
		return
	}
	fmt.Fprintf(w, "   |\n")
	fmt.Fprintf(w, "%3d| %s\n", l.Line[0], src)
	fmt.Fprintf(w, "   | %s\n", underline(l.Col[0], underlineLen(d)))
}

func underlineLen(d Diagnostic) int {
	if n := len(d.Lexeme); n > 0 {
		return n
	}
	return 1
}

func underline(col, n int) string {
	var b strings.Builder
	for i := 1; i < col; i++ {
		b.WriteByte(' ')
	}
	for i := 0; i < n; i++ {
		b.WriteByte('^')
	}
	return b.String()
}
