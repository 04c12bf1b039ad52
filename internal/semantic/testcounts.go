package semantic

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jorge-barreto/runbook/internal/scan"
)

var (
	testNameRe   = regexp.MustCompile("\\*\\*Test:\\*\\*\\s*`?([^`\n]+)`?")
	paramRe      = regexp.MustCompile(`\[.*?\]$`)
	checkpointRe = regexp.MustCompile(`(?i)All\s+(\d+)\s+tests?\s+pass`)
)

// TestCounts keeps a running set of declared test names and compares it with
// every "All N tests pass" checkpoint. Parametrisation suffixes such as
// "test_x[a]" count once.
func TestCounts(body string) []string {
	var violations []string
	names := make(map[string]bool)
	for _, l := range scan.Classify(scan.Split(body)) {
		if l.InFence() {
			continue
		}
		if m := testNameRe.FindStringSubmatch(l.Raw); m != nil {
			name := paramRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
			names[name] = true
		}
		m := checkpointRe.FindStringSubmatch(l.Raw)
		if m == nil {
			continue
		}
		claimed, err := strconv.Atoi(m[1])
		if err != nil || claimed == len(names) {
			continue
		}
		sorted := make([]string, 0, len(names))
		for n := range names {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)
		violations = append(violations, fmt.Sprintf("line %d: checkpoint claims %d tests but found %d test function(s): %s",
			l.Index+1, claimed, len(names), strings.Join(sorted, ", ")))
	}
	return violations
}
