package semantic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

var fileActionRe = regexp.MustCompile("- File: `?([^`\n]+)`?\\s*\n\\s+Action: ([^\n]+)")

type actionKind int

const (
	actionOther actionKind = iota
	actionCreate
	actionModify
)

func classifyAction(action string) actionKind {
	a := strings.ToLower(action)
	for _, kw := range []string{"create", "write new"} {
		if strings.HasPrefix(a, kw) {
			return actionCreate
		}
	}
	for _, kw := range []string{"modify", "add", "update", "edit", "extend"} {
		if strings.HasPrefix(a, kw) {
			return actionModify
		}
	}
	return actionOther
}

type firstAction struct {
	action string
	unit   string
	kind   actionKind
}

// Lifecycle checks that each file is created before it is modified. Files in
// known already exist and may be modified first. A second creation is also
// reported.
func Lifecycle(units []runbook.Unit, known map[string]bool) []string {
	var violations []string
	first := make(map[string]firstAction)
	for _, u := range units {
		for _, m := range fileActionRe.FindAllStringSubmatch(unfenced(u.Body), -1) {
			path := strings.TrimSpace(m[1])
			action := strings.TrimSpace(m[2])
			kind := classifyAction(action)

			orig, seen := first[path]
			if !seen {
				first[path] = firstAction{action: action, unit: u.Label(), kind: kind}
				if kind == actionModify && !known[path] {
					violations = append(violations, fmt.Sprintf("%s: `%s`: no prior creation found", u.Label(), path))
				}
				continue
			}
			switch {
			case kind == actionCreate && orig.kind == actionCreate:
				violations = append(violations, fmt.Sprintf("%s: `%s` created again (first seen in %s as '%s')",
					u.Label(), path, orig.unit, orig.action))
			case kind == actionModify && orig.kind == actionOther:
				violations = append(violations, fmt.Sprintf("%s: `%s` modified before creation (first seen in %s as '%s')",
					u.Label(), path, orig.unit, orig.action))
			}
		}
	}
	return violations
}
