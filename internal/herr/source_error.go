// Package herr implements the two cooperating error families the runtime
// core surfaces: SourceError for anything rendered to a human (CLI/REPL),
// and RuntimeError for the closed taxonomy of kinds the evaluator itself
// raises and try/match arms dispatch on.
package herr

import (
	"fmt"
	"strings"

	"github.com/hikayalang/hikaya/pkg/ast"
)

// SourceError is a single diagnostic with position and source-line context,
// rendered with a caret pointing at the offending column.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     ast.Position
}

// NewSourceError builds a SourceError.
func NewSourceError(pos ast.Position, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a single line of source context. When
// color is true, ANSI codes highlight the caret and message.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *SourceError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of SourceErrors the way the CLI reports
// multiple failures from a single run.
func FormatErrors(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Run failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
