package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

// Baseline template file names inside the baseline directory.
const (
	GeneralBaselineFile = "quiet-task.md"
	TDDBaselineFile     = "tdd-task.md"
)

// Baselines are the agent bodies each phase type starts from.
type Baselines struct {
	General string
	TDD     string
	// Fallback lists the files that were missing and replaced by built-ins.
	Fallback []string
}

// For returns the baseline body for a phase type.
func (b Baselines) For(t runbook.Type) string {
	if t == runbook.TDD {
		return b.TDD
	}
	return b.General
}

// LoadBaselines reads the templates from dir, stripping their frontmatter.
// Missing files fall back to the built-in bodies.
func LoadBaselines(dir string) (Baselines, error) {
	var b Baselines
	var err error
	if b.General, err = readBaseline(dir, GeneralBaselineFile, defaultGeneralBaseline, &b.Fallback); err != nil {
		return b, err
	}
	if b.TDD, err = readBaseline(dir, TDDBaselineFile, defaultTDDBaseline, &b.Fallback); err != nil {
		return b, err
	}
	return b, nil
}

// DefaultBaselines returns the built-in bodies.
func DefaultBaselines() Baselines {
	return Baselines{General: defaultGeneralBaseline, TDD: defaultTDDBaseline}
}

func readBaseline(dir, name, fallback string, missing *[]string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		*missing = append(*missing, path)
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading baseline %s: %w", path, err)
	}
	_, body, _, _ := runbook.ParseFrontmatter(string(data))
	return strings.TrimSpace(body), nil
}

const defaultGeneralBaseline = `# Task Agent

You execute one step of a prepared plan. The step file you are given is the
complete specification of the work.

## Execution

1. Read the step file and any files it references.
2. Perform exactly the changes the step describes. Do not widen scope.
3. Run the verification the step names. If none is named, run the project's
   test suite.
4. Write a short report to the step's Report Path when one is given.

## Rules

- Stop and report on the first unexpected error. Do not improvise fixes
  outside the step.
- Keep output quiet: report results, not narration.`

const defaultTDDBaseline = `# TDD Task Agent

You execute one TDD cycle of a prepared plan. Every cycle follows
RED, GREEN, REFACTOR.

## RED

Write the test the cycle names. Run it and confirm it fails with the
expected failure. If it passes, or fails differently, stop and report.

## GREEN

Write the minimal implementation that makes the test pass. Run the full
suite; every earlier test must still pass.

## REFACTOR

Tidy the code without changing behaviour. Re-run the suite.

## Rules

- Never edit an earlier test to make GREEN pass.
- Stop on any Stop Condition listed in the cycle or the runbook context.`
