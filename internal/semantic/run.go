package semantic

import (
	"fmt"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

// Options configure the checks that need project settings.
type Options struct {
	Rules Rules
	// KnownFiles exist before the runbook runs and may be modified first.
	KnownFiles []string
}

// Run executes the named check against a parsed runbook.
func Run(check string, doc *runbook.Document, s *runbook.Sections, opts Options) (Result, error) {
	r := Result{Check: check}
	switch check {
	case ModelTagsCheck:
		r.Violations = ModelTags(doc.Frontmatter, s, opts.Rules)
	case LifecycleCheck:
		known := make(map[string]bool, len(opts.KnownFiles))
		for _, f := range opts.KnownFiles {
			known[f] = true
		}
		r.Violations = Lifecycle(s.Units(), known)
	case TestCountsCheck:
		r.Violations = TestCounts(doc.Body)
	case RedPlausibilityCheck:
		r.Violations, r.Ambiguous = RedPlausibility(s.Cycles)
	default:
		return r, fmt.Errorf("unknown check %q", check)
	}
	return r, nil
}
