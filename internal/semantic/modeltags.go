package semantic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

// Rules decide which file paths are sensitive.
type Rules struct {
	Prefixes []string
	Patterns []*regexp.Regexp
}

// Sensitive reports whether path is an artifact that must be edited by the
// most capable tier: a markdown file under a sensitive prefix, or a path
// matching a sensitive pattern.
func (r Rules) Sensitive(path string) bool {
	for _, p := range r.Prefixes {
		if strings.HasPrefix(path, p) {
			return strings.HasSuffix(path, ".md")
		}
	}
	for _, re := range r.Patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// ModelTags reports every sensitive file referenced by a unit whose resolved
// model is not the most capable tier.
func ModelTags(fm runbook.Frontmatter, s *runbook.Sections, rules Rules) []string {
	var violations []string
	for _, u := range s.Units() {
		md := runbook.ExtractMetadata(u.Body)
		phaseModel := ""
		if p, ok := s.Phase(u.Phase); ok {
			phaseModel = p.Model
		}
		model := runbook.ResolveModel(md.Model, phaseModel, fm.Model)
		if model == runbook.MostCapable {
			continue
		}
		if model == "" {
			model = "unset"
		}
		for _, m := range fileRefRe.FindAllStringSubmatch(unfenced(u.Body), -1) {
			path := strings.TrimSpace(m[1])
			if rules.Sensitive(path) {
				violations = append(violations, fmt.Sprintf("%s: `%s` expected %s, got %s", u.Label(), path, runbook.MostCapable, model))
			}
		}
	}
	return violations
}
