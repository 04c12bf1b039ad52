package runbook

import "strings"

// ResolveModel walks the priority chain: the unit's own tag, then the phase
// override, then the frontmatter default. It returns "" when none is valid.
func ResolveModel(unit, phase, fallback string) string {
	for _, m := range []string{unit, phase, fallback} {
		m = strings.ToLower(strings.TrimSpace(m))
		if ValidModel(m) {
			return m
		}
	}
	return ""
}
