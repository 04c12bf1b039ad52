// Package scaffold writes a starter runbook and project config.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/runbook/internal/config"
	"github.com/jorge-barreto/runbook/internal/fsutil"
	"github.com/jorge-barreto/runbook/internal/ux"
)

const configTemplate = `# runbook project configuration. Run 'runbook docs config' for every field.
agents-dir: .claude/agents
baseline-dir: agent-core/agents
plans-dir: plans
default-model: sonnet
stage: true
log-level: warn
`

const runbookTemplate = `---
name: {{name}}
type: general
model: sonnet
---
# {{name}}

## Common Context

Describe the goal, the constraints, and anything every step must know.

### Phase 1: Foundation

Work inside the existing module layout.

## Step 1.1: Add the data model

- File: ` + "`src/{{name}}/model.py`" + `
  Action: Create

Define the types the feature needs.

## Step 1.2: Wire the model into the service

**Execution Model**: opus

- File: ` + "`src/{{name}}/model.py`" + `
  Action: Modify

### Phase 2: Verification (type: inline, model: haiku)

Run the full test suite and confirm the working tree is clean.
`

// Init writes plans/<name>/runbook.md under targetDir, plus .runbook.yaml
// when the project has none. An existing runbook is never overwritten.
func Init(targetDir, name string, w io.Writer) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid runbook name %q", name)
	}

	runbookRel := filepath.Join(config.Default().PlansDir, name, "runbook.md")
	runbookPath := filepath.Join(targetDir, runbookRel)
	if _, err := os.Stat(runbookPath); err == nil {
		return fmt.Errorf("%s already exists", runbookRel)
	}

	var written []string
	configPath := filepath.Join(targetDir, config.DefaultFile)
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := fsutil.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", config.DefaultFile, err)
		}
		written = append(written, config.DefaultFile)
	}

	content := strings.ReplaceAll(runbookTemplate, "{{name}}", name)
	if err := fsutil.WriteFile(runbookPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", runbookRel, err)
	}
	written = append(written, runbookRel)

	fmt.Fprintf(w, "\n%s%s✓ Initialized runbook %s%s\n\n", ux.Bold, ux.Green, name, ux.Reset)
	fmt.Fprintf(w, "  Created:\n")
	for _, p := range written {
		fmt.Fprintf(w, "    %s%s%s\n", ux.Cyan, p, ux.Reset)
	}
	fmt.Fprintf(w, "\n  Next steps:\n")
	fmt.Fprintf(w, "    1. Edit %s%s%s\n", ux.Cyan, runbookRel, ux.Reset)
	fmt.Fprintf(w, "    2. Run %srunbook prepare %s%s\n\n", ux.Cyan, runbookRel, ux.Reset)
	return nil
}
