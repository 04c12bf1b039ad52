package runbook

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCycles_ContentBetweenHeaders(t *testing.T) {
	var b strings.Builder
	var want []string
	for i := 1; i <= 4; i++ {
		section := fmt.Sprintf("### Cycle 1.%d: Item %d\n\n**RED**: write test %d\n\n### GREEN Phase\n\nmake it pass", i, i, i)
		want = append(want, section)
		b.WriteString(section)
		b.WriteString("\n\n")
	}

	cycles := ExtractCycles(b.String())
	require.Len(t, cycles, 4)
	for i, c := range cycles {
		assert.Equal(t, 1, c.Major)
		assert.Equal(t, i+1, c.Minor)
		assert.Equal(t, fmt.Sprintf("Item %d", i+1), c.Title)
		assert.Equal(t, want[i], c.Body, "H3 sub-headers stay inside the cycle")
	}
}

func TestExtractCycles_H2Terminates(t *testing.T) {
	body := doc(
		"## Cycle 1.1: First",
		"inside",
		"## Checkpoint",
		"outside",
		"### Cycle 1.2: Second",
		"more",
	)
	cycles := ExtractCycles(body)
	require.Len(t, cycles, 2)
	assert.Equal(t, "## Cycle 1.1: First\ninside", cycles[0].Body)
	assert.Equal(t, "### Cycle 1.2: Second\nmore", cycles[1].Body)
}

func TestExtractCycles_PhaseMarkerTerminatesAndAssignsPhase(t *testing.T) {
	body := doc(
		"### Cycle 1.1: First",
		"inside",
		"### Phase 2: Next",
		"preamble",
		"### Cycle 2.1: Second",
	)
	cycles := ExtractCycles(body)
	require.Len(t, cycles, 2)
	assert.Equal(t, "### Cycle 1.1: First\ninside", cycles[0].Body)
	assert.Equal(t, 1, cycles[0].Phase)
	assert.Equal(t, 2, cycles[1].Phase)
	assert.Equal(t, 5, cycles[1].Line)
}

func TestExtractCycles_IgnoresFencedHeaders(t *testing.T) {
	body := doc(
		"### Cycle 1.1: Real",
		"~~~",
		"### Cycle 1.2: Example only",
		"## Step 3.3: Example only",
		"~~~",
		"tail",
	)
	cycles := ExtractCycles(body)
	require.Len(t, cycles, 1)
	assert.Equal(t, "1.1", cycles[0].ID())
	assert.True(t, strings.HasSuffix(cycles[0].Body, "tail"))
}

func TestExtractCycles_KeepsDuplicates(t *testing.T) {
	cycles := ExtractCycles(doc("### Cycle 1.1: A", "### Cycle 1.1: B"))
	require.Len(t, cycles, 2)
	assert.Equal(t, 1, cycles[0].Line)
	assert.Equal(t, 2, cycles[1].Line)
}
