package runbook

import (
	"fmt"
	"sort"
	"strings"
)

type UnitKind int

const (
	StepUnit UnitKind = iota
	CycleUnit
)

func (k UnitKind) String() string {
	if k == CycleUnit {
		return "Cycle"
	}
	return "Step"
}

// Unit is a step or a cycle: one generated step file.
type Unit struct {
	Kind  UnitKind
	ID    string
	Major int
	Minor int
	Title string
	Body  string
	Phase int
	Line  int
}

// Label returns the display name, e.g. "Step 1.2" or "Cycle 3.1".
func (u Unit) Label() string {
	return fmt.Sprintf("%s %s", u.Kind, u.ID)
}

// FileName returns the step file name, e.g. "step-1-2.md".
func (u Unit) FileName() string {
	return fmt.Sprintf("%s-%s.md", strings.ToLower(u.Kind.String()), strings.ReplaceAll(u.ID, ".", "-"))
}

// Units merges steps and cycles in document order.
func (s *Sections) Units() []Unit {
	units := make([]Unit, 0, len(s.Steps)+len(s.Cycles))
	for _, st := range s.Steps {
		units = append(units, Unit{
			Kind: StepUnit, ID: st.Number, Major: st.Major, Minor: st.Minor,
			Title: st.Title, Body: st.Body, Phase: st.Phase, Line: st.Line,
		})
	}
	for _, c := range s.Cycles {
		units = append(units, Unit{
			Kind: CycleUnit, ID: c.ID(), Major: c.Major, Minor: c.Minor,
			Title: c.Title, Body: c.Body, Phase: c.Phase, Line: c.Line,
		})
	}
	sort.SliceStable(units, func(i, j int) bool { return units[i].Line < units[j].Line })
	return units
}
