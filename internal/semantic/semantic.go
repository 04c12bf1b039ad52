// Package semantic holds the cross-unit checks run by "runbook validate".
// They never block prepare; each one reports PASS, FAIL, AMBIGUOUS or
// SKIPPED.
package semantic

import (
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/scan"
)

// Check names, also used in report file names.
const (
	ModelTagsCheck       = "model-tags"
	LifecycleCheck       = "lifecycle"
	TestCountsCheck      = "test-counts"
	RedPlausibilityCheck = "red-plausibility"
)

// Checks lists every check in the order "validate all" runs them.
var Checks = []string{ModelTagsCheck, LifecycleCheck, TestCountsCheck, RedPlausibilityCheck}

type Outcome int

const (
	Pass Outcome = iota
	Fail
	Ambiguous
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Fail:
		return "FAIL"
	case Ambiguous:
		return "AMBIGUOUS"
	case Skipped:
		return "SKIPPED"
	default:
		return "PASS"
	}
}

// ExitCode maps an outcome to the process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Fail:
		return 1
	case Ambiguous:
		return 2
	default:
		return 0
	}
}

// Worst combines outcomes for "validate all": FAIL beats AMBIGUOUS beats
// everything else.
func Worst(outcomes ...Outcome) Outcome {
	worst := Pass
	for _, o := range outcomes {
		switch {
		case o == Fail:
			return Fail
		case o == Ambiguous:
			worst = Ambiguous
		}
	}
	return worst
}

// Result is the outcome of one check.
type Result struct {
	Check      string
	Violations []string
	// Ambiguous is only reported by red-plausibility.
	Ambiguous []string
	Skipped   bool
}

func (r Result) Outcome() Outcome {
	switch {
	case r.Skipped:
		return Skipped
	case len(r.Violations) > 0:
		return Fail
	case len(r.Ambiguous) > 0:
		return Ambiguous
	default:
		return Pass
	}
}

var fileRefRe = regexp.MustCompile("- File: `?([^`\n]+)`?")

// unfenced drops fenced blocks so example snippets are never read as
// declarations.
func unfenced(body string) string {
	var out []string
	for _, l := range scan.Classify(scan.Split(body)) {
		if !l.InFence() {
			out = append(out, l.Raw)
		}
	}
	return strings.Join(out, "\n")
}
