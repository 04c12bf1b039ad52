package generate

import (
	"fmt"
	"strings"
)

// StepFile renders the file for one step or cycle: a metadata header, a
// rule, the inherited Phase Context if any, then the body verbatim.
func StepFile(p Paths, u UnitPlan, phasePreamble string) string {
	var b strings.Builder
	title := u.Label()
	if u.Title != "" {
		title += ": " + u.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Plan**: `%s`\n", p.Source)
	fmt.Fprintf(&b, "**Execution Model**: %s\n", u.Model)
	fmt.Fprintf(&b, "**Phase**: %d\n", u.Phase)
	if u.ReportPath != "" {
		fmt.Fprintf(&b, "**Report Path**: `%s`\n", u.ReportPath)
	}
	b.WriteString("\n---\n\n")
	if pre := strings.TrimSpace(phasePreamble); pre != "" {
		b.WriteString("## Phase Context\n\n")
		b.WriteString(pre)
		b.WriteString("\n\n---\n\n")
	}
	b.WriteString(u.Body)
	b.WriteString("\n")
	return b.String()
}
