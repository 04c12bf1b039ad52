package semantic

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

var (
	expectedFailureRe = regexp.MustCompile("\\*\\*Expected failure:\\*\\*\\s*`?([^\n`]+)`?")
	importErrRe       = regexp.MustCompile(`(?i)(?:ImportError|ModuleNotFoundError)(?:.*?[` + "`" + `'"]([\w.]+)[` + "`" + `'"]|:\s*([\w.]+))`)
	nonImportErrRe    = regexp.MustCompile(`(?i)\b(ValueError|AttributeError|TypeError|RuntimeError|KeyError|IndexError|NameError|OSError|FileNotFoundError|NotImplementedError)\b`)
	createFileRe      = regexp.MustCompile("(?i)- File: `?([^`\n]+)`?\\s*\n\\s+Action:\\s*Create")
)

type created struct {
	name string
	unit string
}

// createdNames records names in first-creation order; a name keeps the unit
// that created it first.
type createdNames struct {
	order []created
	index map[string]string
}

func (c *createdNames) add(name, unit string) {
	if _, ok := c.index[name]; ok {
		return
	}
	c.index[name] = unit
	c.order = append(c.order, created{name: name, unit: unit})
}

// RedPlausibility compares each cycle's expected RED failure with the files
// earlier GREEN phases created. An import error naming a created module
// cannot happen and is a violation. Any other exception that mentions a
// created name needs judgment and is reported as ambiguous.
func RedPlausibility(cycles []runbook.Cycle) (violations, ambiguous []string) {
	names := &createdNames{index: make(map[string]string)}
	for _, c := range cycles {
		body := unfenced(c.Body)
		if m := expectedFailureRe.FindStringSubmatch(body); m != nil {
			failure := strings.TrimSpace(m[1])
			imports := importErrRe.FindAllStringSubmatch(failure, -1)
			if len(imports) > 0 {
				for _, im := range imports {
					name := im[1]
					if name == "" {
						name = im[2]
					}
					parts := strings.Split(name, ".")
					stem := parts[len(parts)-1]
					by, ok := names.index[name]
					if !ok {
						by, ok = names.index[stem]
					}
					if ok {
						violations = append(violations, fmt.Sprintf("Cycle %s: RED expects `%s` but `%s` already created in Cycle %s GREEN",
							c.ID(), failure, name, by))
					}
				}
			} else if em := nonImportErrRe.FindStringSubmatch(failure); em != nil {
				for _, cr := range names.order {
					if strings.Contains(failure, cr.name) {
						ambiguous = append(ambiguous, fmt.Sprintf("Cycle %s: `%s` exists (created Cycle %s) but RED tests different behavior (%s): `%s`",
							c.ID(), cr.name, cr.unit, em[1], failure))
						break
					}
				}
			}
		}

		for _, m := range createFileRe.FindAllStringSubmatch(body, -1) {
			p := path.Clean(strings.TrimSpace(m[1]))
			trimmed := strings.TrimSuffix(p, path.Ext(p))
			names.add(path.Base(trimmed), c.ID())
			names.add(strings.ReplaceAll(trimmed, "/", "."), c.ID())
		}
	}
	return violations, ambiguous
}
