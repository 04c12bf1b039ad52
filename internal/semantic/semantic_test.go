package semantic

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/runbook/internal/runbook"
)

func parse(t *testing.T, lines ...string) (*runbook.Document, *runbook.Sections) {
	t.Helper()
	doc, s, _, err := runbook.Parse("runbook.md", strings.Join(lines, "\n"))
	require.NoError(t, err)
	return doc, s
}

var testRules = Rules{
	Prefixes: []string{"agent-core/skills/", "agent-core/agents/"},
	Patterns: []*regexp.Regexp{regexp.MustCompile(`^agents/decisions/workflow-[^/]+\.md$`)},
}

func TestRules_Sensitive(t *testing.T) {
	assert.True(t, testRules.Sensitive("agent-core/skills/plan/SKILL.md"))
	assert.False(t, testRules.Sensitive("agent-core/skills/plan/helper.py"))
	assert.True(t, testRules.Sensitive("agents/decisions/workflow-core.md"))
	assert.False(t, testRules.Sensitive("agents/decisions/workflow-a/b.md"))
	assert.False(t, testRules.Sensitive("src/main.go"))
}

func TestModelTags(t *testing.T) {
	doc, s := parse(t,
		"---",
		"model: sonnet",
		"---",
		"### Cycle 1.1: Skill edit",
		"- File: `agent-core/skills/plan/SKILL.md`",
		"  Action: Modify",
		"### Cycle 1.2: Skill edit on opus",
		"**Execution Model**: opus",
		"- File: `agent-core/skills/plan/SKILL.md`",
		"### Cycle 1.3: Code",
		"- File: `src/app.py`",
	)
	violations := ModelTags(doc.Frontmatter, s, testRules)
	require.Len(t, violations, 1)
	assert.Equal(t, "Cycle 1.1: `agent-core/skills/plan/SKILL.md` expected opus, got sonnet", violations[0])
}

func TestModelTags_PhaseModelCounts(t *testing.T) {
	doc, s := parse(t,
		"### Phase 1: Docs (model: opus)",
		"## Step 1.1: Write agent",
		"- File: agent-core/agents/new.md",
	)
	assert.Empty(t, ModelTags(doc.Frontmatter, s, testRules))
}

func TestLifecycle(t *testing.T) {
	_, s := parse(t,
		"### Cycle 1.1: A",
		"- File: `src/a.py`",
		"  Action: Create",
		"- File: `README.md`",
		"  Action: Update intro",
		"- File: `src/b.py`",
		"  Action: Modify",
		"### Cycle 1.2: B",
		"- File: `src/a.py`",
		"  Action: Modify to add parser",
		"- File: `src/a.py`",
		"  Action: Create again",
		"- File: `src/c.py`",
		"  Action: Review",
		"### Cycle 1.3: C",
		"- File: `src/c.py`",
		"  Action: Extend",
	)
	violations := Lifecycle(s.Units(), map[string]bool{"README.md": true})
	require.Len(t, violations, 3)
	assert.Equal(t, "Cycle 1.1: `src/b.py`: no prior creation found", violations[0])
	assert.Equal(t, "Cycle 1.2: `src/a.py` created again (first seen in Cycle 1.1 as 'Create')", violations[1])
	assert.Equal(t, "Cycle 1.3: `src/c.py` modified before creation (first seen in Cycle 1.2 as 'Review')", violations[2])
}

func TestLifecycle_IgnoresFencedExamples(t *testing.T) {
	_, s := parse(t,
		"## Step 1.1: A",
		"```",
		"- File: `x.go`",
		"  Action: Modify",
		"```",
	)
	assert.Empty(t, Lifecycle(s.Units(), nil))
}

func TestTestCounts(t *testing.T) {
	body := strings.Join([]string{
		"**Test:** `test_parse`",
		"**Test:** `test_emit[json]`",
		"**Test:** `test_emit[yaml]`",
		"Checkpoint: All 2 tests pass",
		"**Test:** test_write",
		"Checkpoint: all 4 tests pass",
	}, "\n")
	violations := TestCounts(body)
	require.Len(t, violations, 1)
	assert.Equal(t, "line 6: checkpoint claims 4 tests but found 3 test function(s): test_emit, test_parse, test_write", violations[0])
}

func TestTestCounts_SkipsFences(t *testing.T) {
	body := strings.Join([]string{
		"~~~",
		"**Test:** `test_example`",
		"All 1 test passes",
		"~~~",
		"All 0 tests pass",
	}, "\n")
	assert.Empty(t, TestCounts(body))
}

func TestRedPlausibility_ImportAfterCreate(t *testing.T) {
	cycles := runbook.ExtractCycles(strings.Join([]string{
		"### Cycle 1.1: Foo",
		"**Expected failure:** `ModuleNotFoundError: No module named 'foo'`",
		"- File: `foo.py`",
		"  Action: Create",
		"### Cycle 2.1: Bar",
		"**Expected failure:** `ModuleNotFoundError: foo`",
	}, "\n"))
	violations, ambiguous := RedPlausibility(cycles)
	assert.Empty(t, ambiguous)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Cycle 2.1:")
	assert.Contains(t, violations[0], "already created in Cycle 1.1 GREEN")
}

func TestRedPlausibility_DottedModule(t *testing.T) {
	cycles := runbook.ExtractCycles(strings.Join([]string{
		"### Cycle 1.1: Create",
		"- File: `src/pkg/util.py`",
		"  Action: Create",
		"### Cycle 1.2: Import",
		"**Expected failure:** `ImportError: cannot import name 'src.pkg.util'`",
	}, "\n"))
	violations, _ := RedPlausibility(cycles)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "`src.pkg.util` already created in Cycle 1.1")
}

func TestRedPlausibility_NonImportIsAmbiguous(t *testing.T) {
	cycles := runbook.ExtractCycles(strings.Join([]string{
		"### Cycle 1.1: Create",
		"- File: `parser.py`",
		"  Action: Create",
		"### Cycle 1.2: Behaviour",
		"**Expected failure:** `AttributeError: parser has no attribute 'strict'`",
	}, "\n"))
	violations, ambiguous := RedPlausibility(cycles)
	assert.Empty(t, violations)
	require.Len(t, ambiguous, 1)
	assert.Contains(t, ambiguous[0], "`parser` exists (created Cycle 1.1)")
	assert.Contains(t, ambiguous[0], "(AttributeError)")
}

func TestRedPlausibility_SameCycleCreateIsFine(t *testing.T) {
	cycles := runbook.ExtractCycles(strings.Join([]string{
		"### Cycle 1.1: Create",
		"**Expected failure:** `ModuleNotFoundError: No module named 'widget'`",
		"- File: `widget.py`",
		"  Action: Create",
	}, "\n"))
	violations, ambiguous := RedPlausibility(cycles)
	assert.Empty(t, violations)
	assert.Empty(t, ambiguous)
}

func TestOutcomes(t *testing.T) {
	assert.Equal(t, Pass, Result{}.Outcome())
	assert.Equal(t, Fail, Result{Violations: []string{"x"}, Ambiguous: []string{"y"}}.Outcome())
	assert.Equal(t, Ambiguous, Result{Ambiguous: []string{"y"}}.Outcome())
	assert.Equal(t, Skipped, Result{Skipped: true, Violations: []string{"x"}}.Outcome())

	assert.Equal(t, 0, Skipped.ExitCode())
	assert.Equal(t, 1, Fail.ExitCode())
	assert.Equal(t, 2, Ambiguous.ExitCode())

	assert.Equal(t, Fail, Worst(Pass, Ambiguous, Fail))
	assert.Equal(t, Ambiguous, Worst(Pass, Ambiguous, Skipped))
	assert.Equal(t, Pass, Worst(Pass, Skipped))
}

func TestRun_UnknownCheck(t *testing.T) {
	doc, s := parse(t, "## Step 1.1: a")
	_, err := Run("spelling", doc, s, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown check "spelling"`)
}

func TestRun_LifecycleKnownFiles(t *testing.T) {
	doc, s := parse(t, "## Step 1.1: a", "- File: `go.mod`", "  Action: Edit module path")
	r, err := Run(LifecycleCheck, doc, s, Options{})
	require.NoError(t, err)
	assert.Equal(t, Fail, r.Outcome())

	r, err = Run(LifecycleCheck, doc, s, Options{KnownFiles: []string{"go.mod"}})
	require.NoError(t, err)
	assert.Equal(t, Pass, r.Outcome())
}

func TestReportPath(t *testing.T) {
	assert.Equal(t, filepath.Join("plans", "x", "reports", "validation-lifecycle.md"),
		ReportPath(filepath.Join("plans", "x"), true, "ignored", LifecycleCheck))
	assert.Equal(t, filepath.Join("plans", "runbook", "reports", "validation-test-counts.md"),
		ReportPath(filepath.Join("elsewhere", "runbook.md"), false, "plans", TestCountsCheck))
}

func TestReport_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "validation-red-plausibility.md")
	r := Report{
		Runbook: "plans/x/runbook.md",
		Date:    time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*3600)),
		RunID:   "5b7c1a7e-0000-4000-8000-000000000000",
		Result:  Result{Check: RedPlausibilityCheck, Ambiguous: []string{"Cycle 1.2: maybe"}},
	}
	require.NoError(t, r.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# Validation Report: red-plausibility\n\n**Runbook:** plans/x/runbook.md\n\n"))
	assert.Contains(t, out, "**Date:** 2026-03-01T17:30:00Z")
	assert.Contains(t, out, "**Run ID:** 5b7c1a7e-0000-4000-8000-000000000000")
	assert.Contains(t, out, "**Result:** AMBIGUOUS")
	assert.Contains(t, out, "Failed: 0\n\nAmbiguous: 1")
	assert.NotContains(t, out, "## Violations")
	assert.Contains(t, out, "## Ambiguous\n\n- Cycle 1.2: maybe\n")
}

func TestReport_SkippedHasNoAmbiguousCount(t *testing.T) {
	out := Report{Result: Result{Check: ModelTagsCheck, Skipped: true}}.Render()
	assert.Contains(t, out, "**Result:** SKIPPED")
	assert.NotContains(t, out, "Ambiguous:")
}
