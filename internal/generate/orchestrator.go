package generate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const phaseBoundary = "**[PHASE BOUNDARY: insert review checkpoint]**"

type planItem struct {
	phase  int
	line   int
	label  string
	detail string
}

// OrchestratorPlan returns the author's Orchestrator Instructions verbatim
// when present. Otherwise it lists steps, cycles and inline phases ordered by
// phase (document order within a phase), marks the last item of each phase as
// a boundary, and closes with the phase to model table when any phase model resolved.
func OrchestratorPlan(plan *Plan, authored string) string {
	if strings.TrimSpace(authored) != "" {
		return strings.TrimSpace(authored) + "\n"
	}

	var items []planItem
	for _, ph := range plan.Phases {
		for _, u := range ph.Units {
			items = append(items, planItem{
				phase: ph.Number,
				line:  u.Line,
				label: u.Label(),
				detail: fmt.Sprintf("`%s` via %s (%s)",
					filepath.ToSlash(filepath.Join(filepath.Base(plan.Paths.StepsDir), u.FileName())), u.Agent, u.Model),
			})
		}
		if ph.Inline != nil {
			items = append(items, planItem{
				phase:  ph.Number,
				line:   ph.Inline.Line,
				label:  fmt.Sprintf("Inline Phase %d", ph.Number),
				detail: fmt.Sprintf("execute directly (%s), see below", ph.Model),
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].phase != items[j].phase {
			return items[i].phase < items[j].phase
		}
		return items[i].line < items[j].line
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# Orchestrator Plan: %s\n\n", plan.Paths.Name)
	b.WriteString("Execute items sequentially. Dispatch each step or cycle to its phase agent.\n")
	b.WriteString("Stop on error and escalate for diagnosis before continuing.\n\n")
	b.WriteString("## Execution Order\n\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s: %s", i+1, it.label, it.detail)
		if i == len(items)-1 || items[i+1].phase != it.phase {
			b.WriteString(" " + phaseBoundary)
		}
		b.WriteString("\n")
	}

	for _, ph := range plan.Phases {
		if ph.Inline == nil {
			continue
		}
		title := ph.Inline.Title
		if title == "" {
			title = fmt.Sprintf("Phase %d", ph.Number)
		}
		fmt.Fprintf(&b, "\n## Inline Phase %d: %s\n\n", ph.Number, title)
		if body := strings.TrimSpace(ph.Inline.Body); body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}

	if !modelsKnown(plan.Phases) {
		return b.String()
	}
	b.WriteString("\n## Phase Models\n\n")
	b.WriteString("| Phase | Type | Agent | Model |\n")
	b.WriteString("|-------|------|-------|-------|\n")
	for _, ph := range plan.Phases {
		agent := ph.Agent
		if agent == "" {
			agent = "(orchestrator)"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", ph.Number, ph.Type, agent, ph.Model)
	}
	return b.String()
}

func modelsKnown(phases []PhasePlan) bool {
	for _, ph := range phases {
		if ph.Model != "" {
			return true
		}
	}
	return false
}
