package assemble

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jorge-barreto/runbook/internal/runbook"
	"github.com/jorge-barreto/runbook/internal/validate"
)

func writeFragments(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "feature-x")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestDir_NotAPhaseDirectory(t *testing.T) {
	dir := writeFragments(t, map[string]string{"runbook.md": "## Step 1.1: x\n"})
	res, diags, err := Dir(dir, Options{})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, diags)
}

func TestDir_GapIsFatal(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "## Step 1.1: a\n",
		"runbook-phase-2.md": "## Step 2.1: b\n",
		"runbook-phase-5.md": "## Step 5.1: c\n",
	})
	_, _, err := Dir(dir, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPhaseGap))

	var gap *GapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, []int{3, 4}, gap.Missing)
	assert.Contains(t, err.Error(), "missing phase 3, 4")
}

func TestDir_SequenceMustStartAtZeroOrOne(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-2.md": "## Step 2.1: b\n",
	})
	_, _, err := Dir(dir, Options{})
	var gap *GapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, []int{1}, gap.Missing)
}

func TestDir_DuplicateNumbers(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md":  "## Step 1.1: a\n",
		"runbook-phase-01.md": "## Step 1.2: b\n",
	})
	_, _, err := Dir(dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both declare phase 1")
}

func TestDir_FirstFragmentNeedsUnits(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "# Intro\n\nJust prose.\n",
		"runbook-phase-2.md": "## Step 2.1: b\n",
	})
	_, _, err := Dir(dir, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoUnits))
	assert.Contains(t, err.Error(), "runbook-phase-1.md")
}

func TestDir_GeneralAssembly(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-0.md": "# Prep work\n\n## Step 0.1: prep\n\ndo prep\n",
		"runbook-phase-1.md": "### Phase 1: Build (model: opus)\n\n## Step 1.1: build\n",
	})
	res, diags, err := Dir(dir, Options{DefaultModel: "sonnet"})
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, res)

	assert.Equal(t, "feature-x", res.Name)
	assert.Equal(t, runbook.General, res.Type)
	assert.False(t, res.Boilerplate)
	require.Len(t, res.Fragments, 2)
	assert.Equal(t, 0, res.Fragments[0].Number)

	assert.True(t, strings.HasPrefix(res.Content, "---\nname: feature-x\ntype: general\nmodel: sonnet\n---\n"))
	assert.Contains(t, res.Content, "### Phase 0: Prep work\n\n# Prep work")
	assert.Equal(t, 1, strings.Count(res.Content, "### Phase 1:"), "existing marker is not duplicated")

	doc, s, _, err := runbook.Parse(dir, res.Content)
	require.NoError(t, err)
	assert.Equal(t, runbook.Sonnet, doc.Frontmatter.Model)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, 0, s.Steps[0].Phase)
	assert.Equal(t, 1, s.Steps[1].Phase)
}

func TestDir_TDDInjectsCommonContext(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "---\nmodel: haiku\nname: parser\n---\n### Cycle 1.1: parse\n\n**RED**: test\n",
		"runbook-phase-2.md": "### Cycle 2.1: emit\n",
	})
	res, _, err := Dir(dir, Options{DefaultModel: "sonnet"})
	require.NoError(t, err)

	assert.Equal(t, runbook.TDD, res.Type)
	assert.Equal(t, "parser", res.Name)
	assert.True(t, res.Boilerplate)
	assert.Contains(t, res.Content, "model: haiku")

	_, s, _, err := runbook.Parse(dir, res.Content)
	require.NoError(t, err)
	lower := strings.ToLower(s.CommonContext)
	assert.Contains(t, lower, "stop condition")
	assert.Contains(t, lower, "red")
	assert.Contains(t, lower, "green")
	require.Len(t, s.Cycles, 2)
	assert.Equal(t, 2, s.Cycles[1].Phase)
}

func TestDir_TDDKeepsAuthorCommonContext(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "## Common Context\n\nMine.\n\n### Cycle 1.1: parse\n",
	})
	res, _, err := Dir(dir, Options{})
	require.NoError(t, err)
	assert.False(t, res.Boilerplate)
	assert.NotContains(t, res.Content, "TDD Protocol")
}

func TestDir_GeneralFirstFragmentKeepsGeneralStyle(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "## Step 1.1: setup\n",
		"runbook-phase-2.md": "### Cycle 2.1: logic\n",
	})
	res, _, err := Dir(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, runbook.General, res.Type)
	assert.False(t, res.Boilerplate)
}

func TestDir_CyclesThenStepsKeepsTDDBoilerplate(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "### Cycle 1.1: parse\n\n**RED**: failing test\n\n**GREEN**: implement\n",
		"runbook-phase-2.md": "## Step 2.1: document\n\nWrite the README.\n",
	})
	res, diags, err := Dir(dir, Options{DefaultModel: "sonnet"})
	require.NoError(t, err)
	require.Empty(t, diags)
	assert.Equal(t, runbook.TDD, res.Type)
	assert.True(t, res.Boilerplate)

	doc, s, parseDiags, err := runbook.Parse(dir, res.Content)
	require.NoError(t, err)
	parseDiags.Append(validate.Runbook(doc, s))
	assert.False(t, parseDiags.HasErrors(), parseDiags.Messages())
	require.Len(t, s.Cycles, 1)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, 2, s.Steps[0].Phase)
}

func TestDir_FragmentWarningsNameTheFile(t *testing.T) {
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "---\nmodel: gpt\n---\n## Step 1.1: a\n",
	})
	_, diags, err := Dir(dir, Options{})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.True(t, strings.HasPrefix(diags[0].Message, "runbook-phase-1.md: "))
}

func TestDir_LogsFragments(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dir := writeFragments(t, map[string]string{
		"runbook-phase-1.md": "## Step 1.1: a\n",
	})
	_, _, err := Dir(dir, Options{Log: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("read phase fragment").Len())
	assert.Equal(t, 1, logs.FilterMessage("assembled runbook").Len())
}
