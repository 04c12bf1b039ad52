// Package validate holds the structural checks that must pass before any
// artifact is written.
package validate

import (
	"sort"

	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

// CycleNumbering checks cycle identifiers. Duplicates and groups that do not
// start at minor 1 are errors; gaps are warnings because document order, not
// the number, decides execution order.
func CycleNumbering(cycles []runbook.Cycle) diag.List {
	var diags diag.List
	if len(cycles) == 0 {
		diags.Errorf(0, "no cycles found (expected \"### Cycle X.Y: Title\" headers)")
		return diags
	}

	firstSeen := make(map[string]int)
	groups := make(map[int][]int)
	for _, c := range cycles {
		if first, dup := firstSeen[c.ID()]; dup {
			err := &runbook.IdentifierError{Kind: "cycle", ID: c.ID(), FirstLine: first, Line: c.Line}
			diags.Errorf(c.Line, "%s", err.Error())
			continue
		}
		firstSeen[c.ID()] = c.Line
		groups[c.Major] = append(groups[c.Major], c.Minor)
	}

	majors := make([]int, 0, len(groups))
	for m := range groups {
		majors = append(majors, m)
	}
	sort.Ints(majors)

	for i, major := range majors {
		if i > 0 && major-majors[i-1] > 1 {
			diags.Warnf(0, "gap in cycle numbering: major %d follows %d", major, majors[i-1])
		}
		minors := groups[major]
		sort.Ints(minors)
		if minors[0] != 1 {
			diags.Errorf(0, "cycle %d.x starts at %d.%d (expected %d.1)", major, major, minors[0], major)
		}
		for j := 1; j < len(minors); j++ {
			if minors[j]-minors[j-1] > 1 {
				diags.Warnf(0, "gap in cycle numbering: %d.%d follows %d.%d", major, minors[j], major, minors[j-1])
			}
		}
	}
	return diags
}

// PhaseNumbering checks that phases never decrease in document order. A jump
// of more than one is only a warning.
func PhaseNumbering(units []runbook.Unit) diag.List {
	var diags diag.List
	for i := 1; i < len(units); i++ {
		prev, cur := units[i-1], units[i]
		switch {
		case cur.Phase < prev.Phase:
			diags.Errorf(cur.Line, "%s is in phase %d after %s in phase %d (phase numbers must not decrease)",
				cur.Label(), cur.Phase, prev.Label(), prev.Phase)
		case cur.Phase-prev.Phase > 1:
			diags.Warnf(cur.Line, "gap in phase numbering: %s jumps from phase %d to %d",
				cur.Label(), prev.Phase, cur.Phase)
		}
	}
	return diags
}
