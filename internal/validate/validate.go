package validate

import (
	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

// Runbook runs every structural check that applies to the document's type.
func Runbook(doc *runbook.Document, s *runbook.Sections) diag.List {
	var diags diag.List
	if s.Empty() {
		diags.Errorf(0, "no steps, cycles, or inline phases found")
		return diags
	}

	t := doc.Frontmatter.Type
	if t == runbook.TDD || len(s.Cycles) > 0 {
		diags.Append(CycleNumbering(s.Cycles))
		diags.Append(CycleStructure(s.Cycles, s.CommonContext))
	}
	diags.Append(PhaseNumbering(s.Units()))
	diags.Append(Models(doc.Frontmatter, s))
	return diags
}
