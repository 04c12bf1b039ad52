package generate

import (
	"sort"

	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

// PhasePlan is one phase with everything resolved.
type PhasePlan struct {
	Number   int
	Title    string
	Type     runbook.Type
	Model    string
	Preamble string
	// Agent is empty for inline phases without units; the orchestrator runs
	// those itself.
	Agent  string
	Units  []UnitPlan
	Inline *runbook.InlinePhase
}

// UnitPlan is a step or cycle with its resolved model.
type UnitPlan struct {
	runbook.Unit
	Model      string
	ReportPath string
	Agent      string
}

// Plan is the resolved execution structure of a runbook.
type Plan struct {
	Paths  Paths
	Phases []PhasePlan
}

// Units returns every unit in document order.
func (p *Plan) Units() []UnitPlan {
	var units []UnitPlan
	for _, ph := range p.Phases {
		units = append(units, ph.Units...)
	}
	sort.SliceStable(units, func(i, j int) bool { return units[i].Line < units[j].Line })
	return units
}

// Counts reports how many steps, cycles and inline phases the plan holds.
func (p *Plan) Counts() (steps, cycles, inline int) {
	for _, ph := range p.Phases {
		if ph.Inline != nil {
			inline++
		}
		for _, u := range ph.Units {
			if u.Kind == runbook.CycleUnit {
				cycles++
			} else {
				steps++
			}
		}
	}
	return steps, cycles, inline
}

// Build resolves phase types, agents and models. A unit whose model cannot
// be resolved is an error; validation normally catches this first.
func Build(doc *runbook.Document, s *runbook.Sections, paths Paths) (*Plan, diag.List) {
	var diags diag.List
	numbers := s.PhaseNumbers()
	multi := len(numbers) > 1
	segments := runbook.PhaseSegments(doc.Body)

	byPhase := make(map[int][]runbook.Unit)
	for _, u := range s.Units() {
		byPhase[u.Phase] = append(byPhase[u.Phase], u)
	}

	plan := &Plan{Paths: paths}
	for _, n := range numbers {
		marker, _ := s.Phase(n)
		ph := PhasePlan{
			Number:   n,
			Title:    marker.Title,
			Preamble: marker.Preamble,
		}
		inline, isInline := s.InlineFor(n)
		ph.Type = runbook.InferPhaseType(segments[n], isInline || marker.Inline)
		if isInline {
			ip := inline
			ph.Inline = &ip
			ph.Model = runbook.ResolveModel(ip.Model, marker.Model, doc.Frontmatter.Model)
		} else {
			ph.Model = runbook.ResolveModel("", marker.Model, doc.Frontmatter.Model)
		}
		if !isInline || len(byPhase[n]) > 0 {
			ph.Agent = AgentName(paths.Name, n, multi)
		}

		for _, u := range byPhase[n] {
			md := runbook.ExtractMetadata(u.Body)
			model := runbook.ResolveModel(md.Model, marker.Model, doc.Frontmatter.Model)
			if model == "" {
				diags.Errorf(u.Line, "%s: no execution model", u.Label())
			}
			ph.Units = append(ph.Units, UnitPlan{Unit: u, Model: model, ReportPath: md.ReportPath, Agent: ph.Agent})
		}
		if ph.Model == "" && len(ph.Units) > 0 {
			ph.Model = ph.Units[0].Model
		}
		plan.Phases = append(plan.Phases, ph)
	}
	return plan, diags
}
