package runbook

import (
	"strconv"
	"strings"

	"github.com/jorge-barreto/runbook/internal/scan"
)

// ExtractCycles finds every "### Cycle X.Y:" (or "## Cycle X.Y:") unit in
// body. A cycle runs until the next cycle header, any other H2 header, or a
// phase marker; H3 sub-headers such as "RED Phase" stay inside the cycle.
// Duplicates are kept so the numbering validator can report them.
func ExtractCycles(body string) []Cycle {
	lines := scan.Classify(scan.Split(body))
	return cyclesFrom(lines, phaseMap(lines))
}

func cyclesFrom(lines []scan.Line, phaseOf []int) []Cycle {
	var out []Cycle
	var cur *Cycle
	var buf []string

	flush := func() {
		if cur != nil {
			cur.Body = strings.TrimSpace(strings.Join(buf, "\n"))
			out = append(out, *cur)
		}
		cur = nil
		buf = nil
	}

	for i, l := range lines {
		if l.Kind == scan.Header && (l.Level == 2 || l.Level == 3) {
			if m := cycleTitleRe.FindStringSubmatch(strings.TrimSpace(l.Title)); m != nil {
				flush()
				major, _ := strconv.Atoi(m[1])
				minor, _ := strconv.Atoi(m[2])
				cur = &Cycle{
					Major: major,
					Minor: minor,
					Title: strings.TrimSpace(m[3]),
					Phase: phaseOf[i],
					Line:  i + 1,
				}
				buf = []string{l.Raw}
				continue
			}
		}
		if l.Kind == scan.PhaseMarker || l.IsH2() {
			flush()
			continue
		}
		if cur != nil {
			buf = append(buf, l.Raw)
		}
	}
	flush()
	return out
}
