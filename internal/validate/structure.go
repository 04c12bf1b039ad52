package validate

import (
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

var (
	redMarkerRe   = regexp.MustCompile(`(?m)^#{2,6}\s*red\b|\*\*red|red phase`)
	greenMarkerRe = regexp.MustCompile(`(?m)^#{2,6}\s*green\b|\*\*green|green phase`)
)

// CycleStructure checks each cycle for its required markers. Major 0 cycles
// are spikes and need no RED/GREEN; "[regression]" cycles need only GREEN.
// Stop/error conditions and dependencies may be inherited from the Common
// Context.
func CycleStructure(cycles []runbook.Cycle, commonContext string) diag.List {
	var diags diag.List
	common := strings.ToLower(commonContext)
	inheritsStop := hasStopConditions(common)
	inheritsDeps := strings.Contains(common, "dependenc")

	for _, c := range cycles {
		body := strings.ToLower(c.Body)
		spike := c.Major == 0
		regression := strings.Contains(strings.ToLower(c.Title), "[regression]")

		if !spike && !regression && !redMarkerRe.MatchString(body) {
			diags.Errorf(c.Line, "Cycle %s: missing RED phase", c.ID())
		}
		if !spike && !greenMarkerRe.MatchString(body) {
			diags.Errorf(c.Line, "Cycle %s: missing GREEN phase", c.ID())
		}
		if !inheritsStop && !hasStopConditions(body) {
			diags.Errorf(c.Line, "Cycle %s: missing Stop/Error Conditions (none in cycle or Common Context)", c.ID())
		}
		if !inheritsDeps && !strings.Contains(body, "dependenc") {
			diags.Warnf(c.Line, "Cycle %s: no Dependencies section", c.ID())
		}
	}
	return diags
}

func hasStopConditions(lower string) bool {
	return strings.Contains(lower, "stop condition") || strings.Contains(lower, "error condition")
}
