// Package diag collects validation messages from every compile pass so they
// can be rendered once at the top level.
package diag

import (
	"fmt"
	"io"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "ERROR"
	}
	return "WARNING"
}

// Diagnostic is one message with an optional 1-based source line.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// List accumulates diagnostics in the order they were produced.
type List []Diagnostic

// Errorf appends an error. line is 1-based; 0 means no location.
func (l *List) Errorf(line int, format string, args ...any) {
	*l = append(*l, Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Line: line})
}

// Warnf appends a warning. line is 1-based; 0 means no location.
func (l *List) Warnf(line int, format string, args ...any) {
	*l = append(*l, Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Line: line})
}

// Append adds other lists in order.
func (l *List) Append(others ...List) {
	for _, o := range others {
		*l = append(*l, o...)
	}
}

// HasErrors reports whether any diagnostic is an error.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (l List) Errors() List {
	return l.filter(Error)
}

func (l List) Warnings() List {
	return l.filter(Warning)
}

func (l List) filter(s Severity) List {
	var out List
	for _, d := range l {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Messages returns the bare message text of each diagnostic.
func (l List) Messages() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Message
	}
	return out
}

// Render writes one line per diagnostic, errors first.
func (l List) Render(w io.Writer) {
	for _, d := range l.Errors() {
		fmt.Fprintln(w, d.String())
	}
	for _, d := range l.Warnings() {
		fmt.Fprintln(w, d.String())
	}
}
