// Package errors formats compiler diagnostics with source context and a
// caret pointing at the offending line, and accumulates them across a
// compilation run instead of stopping at the first one.
package errors

import (
	"fmt"
	"strings"

	"github.com/hiperion-pscc/pscc/internal/lexer"
)

// Phase names which compiler stage raised an error, used to label
// combined diagnostic output (which keeps the order errors were raised in).
type Phase int

const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseSemantic
	PhaseGenerate
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lexical"
	case PhaseParse:
		return "syntax"
	case PhaseSemantic:
		return "semantic"
	case PhaseGenerate:
		return "codegen"
	default:
		return "unknown"
	}
}

// CompilerError is a single diagnostic: what phase raised it, where, and why.
type CompilerError struct {
	Phase   Phase
	Message string
	Source  string
	File    string
	Pos     lexer.Position
	Fatal   bool
}

// NewCompilerError creates a CompilerError for the given phase and position.
func NewCompilerError(phase Phase, pos lexer.Position, message, source, file string, fatal bool) *CompilerError {
	return &CompilerError{Phase: phase, Pos: pos, Message: message, Source: source, File: file, Fatal: fatal}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format() }

// Format renders the error with a source line and caret, matching the style
// used throughout the rest of the toolchain's diagnostics.
func (e *CompilerError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s error in %s:%d\n", e.Phase, e.File, e.Pos.Line)
	} else {
		fmt.Fprintf(&sb, "%s error at line %d\n", e.Phase, e.Pos.Line)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// List accumulates diagnostics across a compilation run, in the order they
// were raised, rather than aborting at the first error.
type List struct {
	errs []*CompilerError
}

// Add appends e to the list.
func (l *List) Add(e *CompilerError) { l.errs = append(l.errs, e) }

// Addf formats a message and appends a new CompilerError built from it.
func (l *List) Addf(phase Phase, pos lexer.Position, source, file string, fatal bool, format string, args ...any) {
	l.Add(NewCompilerError(phase, pos, fmt.Sprintf(format, args...), source, file, fatal))
}

// HasErrors reports whether any diagnostic has been recorded.
func (l *List) HasErrors() bool { return len(l.errs) > 0 }

// HasFatal reports whether any recorded diagnostic is fatal, meaning
// compilation cannot usefully continue past the phase that raised it.
func (l *List) HasFatal() bool {
	for _, e := range l.errs {
		if e.Fatal {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in order.
func (l *List) All() []*CompilerError { return l.errs }

// Len returns the number of diagnostics recorded.
func (l *List) Len() int { return len(l.errs) }

// Format renders every diagnostic in the list, one after another.
func (l *List) Format() string {
	if len(l.errs) == 0 {
		return ""
	}
	if len(l.errs) == 1 {
		return l.errs[0].Format()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(l.errs))
	for i, e := range l.errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(l.errs))
		sb.WriteString(e.Format())
		if i < len(l.errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
