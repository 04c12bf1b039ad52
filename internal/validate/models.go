package validate

import (
	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

// Models resolves the execution model of every unit. An unrecognised tag
// falls back down the chain with a warning; a unit that resolves to nothing
// is an error.
func Models(fm runbook.Frontmatter, s *runbook.Sections) diag.List {
	var diags diag.List
	for _, p := range s.Phases {
		if p.Model != "" && !runbook.ValidModel(p.Model) {
			diags.Warnf(p.Line, "Phase %d: unknown model %q; ignoring", p.Number, p.Model)
		}
	}
	for _, u := range s.Units() {
		md := runbook.ExtractMetadata(u.Body)
		phaseModel := ""
		if p, ok := s.Phase(u.Phase); ok {
			phaseModel = p.Model
		}
		resolved := runbook.ResolveModel(md.Model, phaseModel, fm.Model)
		if md.InvalidModel() {
			diags.Warnf(u.Line, "%s: invalid Execution Model %q; falling back to %q", u.Label(), md.RawModel, resolved)
		}
		if resolved == "" {
			diags.Errorf(u.Line, "%s: no execution model (set **Execution Model**, a phase model, or frontmatter model)", u.Label())
		}
	}
	return diags
}
