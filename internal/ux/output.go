// Package ux renders the human-facing terminal output of the compiler.
// Diagnostics go to stderr; confirmations and summaries go to stdout.
package ux

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Created prints a confirmation line for a written artifact.
func Created(w io.Writer, kind, path string) {
	fmt.Fprintf(w, "%s✓ Created %s:%s %s\n", Green, kind, Reset, path)
}

// PhaseLine is one row of the generation summary.
type PhaseLine struct {
	Number int
	Type   string
	Model  string
	Units  int
}

// Summary describes a completed prepare run.
type Summary struct {
	Name   string
	Steps  int
	Cycles int
	Inline int
	Phases []PhaseLine
}

// PrintSummary prints the runbook name, unit counts and per-phase models.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n%sRunbook:%s %s\n", Bold, Reset, s.Name)

	var counts []string
	if s.Steps > 0 {
		counts = append(counts, plural(s.Steps, "step"))
	}
	if s.Cycles > 0 {
		counts = append(counts, plural(s.Cycles, "cycle"))
	}
	if s.Inline > 0 {
		counts = append(counts, plural(s.Inline, "inline phase"))
	}
	if len(counts) == 0 {
		counts = append(counts, "no units")
	}
	fmt.Fprintf(w, "%sUnits:%s   %s across %s\n", Bold, Reset, strings.Join(counts, ", "), plural(len(s.Phases), "phase"))

	for _, p := range s.Phases {
		fmt.Fprintf(w, "  %sPhase %d%s  %-8s %s%s%s", Dim, p.Number, Reset, p.Type, Cyan, p.Model, Reset)
		if p.Units > 0 {
			fmt.Fprintf(w, "  %s(%s)%s", Dim, plural(p.Units, "unit"), Reset)
		}
		fmt.Fprintln(w)
	}
}

// Outcome prints the result of one semantic check and where its report went.
func Outcome(w io.Writer, check, outcome, reportPath string) {
	color := Green
	switch outcome {
	case "FAIL":
		color = Red
	case "AMBIGUOUS":
		color = Yellow
	case "SKIPPED":
		color = Dim
	}
	fmt.Fprintf(w, "%s%-9s%s %-18s %s%s%s\n", color, outcome, Reset, check, Dim, reportPath, Reset)
}

// Warn prints a non-fatal notice.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%swarning:%s %s\n", Yellow, Reset, fmt.Sprintf(format, args...))
}

// Watching prints the banner shown while the watch loop is idle.
func Watching(w io.Writer, target string) {
	fmt.Fprintf(w, "\n%sWatching%s %s %s(Ctrl-C to stop)%s\n", Bold, Reset, target, Dim, Reset)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
