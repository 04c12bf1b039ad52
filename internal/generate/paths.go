// Package generate turns a validated runbook into execution artifacts: one
// agent per phase, one file per step or cycle, and an orchestrator plan.
package generate

import (
	"fmt"
	"path/filepath"
)

// Paths locates every artifact of one runbook.
type Paths struct {
	Name string
	// Source is the runbook file or phase directory, referenced from step files.
	Source    string
	AgentsDir string
	StepsDir  string
	PlanPath  string
}

// DerivePaths names the runbook after the directory that holds it: the
// parent of a runbook file, or the phase directory itself.
func DerivePaths(input string, isDir bool, agentsDir string) Paths {
	root := filepath.Dir(input)
	if isDir {
		root = filepath.Clean(input)
	}
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		if abs, err := filepath.Abs(root); err == nil {
			name = filepath.Base(abs)
		}
	}
	return Paths{
		Name:      name,
		Source:    filepath.ToSlash(input),
		AgentsDir: agentsDir,
		StepsDir:  filepath.Join(root, "steps"),
		PlanPath:  filepath.Join(root, "orchestrator-plan.md"),
	}
}

// AgentName is "<name>-task", with a "-p<N>" suffix when the runbook has
// more than one phase.
func AgentName(runbookName string, phase int, multiPhase bool) string {
	if !multiPhase {
		return runbookName + "-task"
	}
	return fmt.Sprintf("%s-task-p%d", runbookName, phase)
}

// AgentPath is the descriptor file for agent.
func (p Paths) AgentPath(agent string) string {
	return filepath.Join(p.AgentsDir, agent+".md")
}
