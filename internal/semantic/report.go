package semantic

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jorge-barreto/runbook/internal/fsutil"
)

// Report is one validation report file.
type Report struct {
	Runbook string
	Date    time.Time
	RunID   string
	Result  Result
}

// ReportPath places reports next to a phase directory, or under
// <plansDir>/<stem>/reports for a single runbook file.
func ReportPath(input string, isDir bool, plansDir, check string) string {
	var dir string
	if isDir {
		dir = filepath.Join(input, "reports")
	} else {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		dir = filepath.Join(plansDir, stem, "reports")
	}
	return filepath.Join(dir, "validation-"+check+".md")
}

// Render formats the report as markdown.
func (r Report) Render() string {
	res := r.Result
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation Report: %s\n\n", res.Check)
	fmt.Fprintf(&b, "**Runbook:** %s\n\n", r.Runbook)
	fmt.Fprintf(&b, "**Date:** %s\n\n", r.Date.UTC().Format("2006-01-02T15:04:05Z"))
	if r.RunID != "" {
		fmt.Fprintf(&b, "**Run ID:** %s\n\n", r.RunID)
	}
	fmt.Fprintf(&b, "**Result:** %s\n\n", res.Outcome())
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "Failed: %d\n\n", len(res.Violations))
	if res.Check == RedPlausibilityCheck {
		fmt.Fprintf(&b, "Ambiguous: %d\n\n", len(res.Ambiguous))
	}
	if len(res.Violations) > 0 {
		b.WriteString("## Violations\n\n")
		for _, v := range res.Violations {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}
	if len(res.Ambiguous) > 0 {
		b.WriteString("\n## Ambiguous\n\n")
		for _, a := range res.Ambiguous {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	return b.String()
}

// Write renders the report to path.
func (r Report) Write(path string) error {
	if err := fsutil.WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
