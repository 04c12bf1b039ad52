package generate

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jorge-barreto/runbook/internal/fsutil"
	"github.com/jorge-barreto/runbook/internal/runbook"
)

type Kind string

const (
	AgentArtifact        Kind = "agent"
	StepArtifact         Kind = "step"
	OrchestratorArtifact Kind = "orchestrator"
)

// Artifact is one generated file.
type Artifact struct {
	Kind    Kind
	Path    string
	Content string
}

// Output holds every artifact of a runbook before anything is written.
type Output struct {
	Agents   []Artifact
	Steps    []Artifact
	Plan     Artifact
	StepsDir string
}

// Generate renders all artifacts for a resolved plan. The result depends
// only on its inputs, so regenerating an unchanged runbook is byte-identical.
func Generate(plan *Plan, s *runbook.Sections, baselines Baselines) (*Output, error) {
	out := &Output{StepsDir: plan.Paths.StepsDir}
	multi := len(plan.Phases) > 1
	for _, ph := range plan.Phases {
		if ph.Agent == "" {
			continue
		}
		content, err := AgentDescriptor(plan.Paths, ph, multi, baselines, s.CommonContext)
		if err != nil {
			return nil, err
		}
		out.Agents = append(out.Agents, Artifact{
			Kind:    AgentArtifact,
			Path:    plan.Paths.AgentPath(ph.Agent),
			Content: content,
		})
	}
	for _, ph := range plan.Phases {
		for _, u := range ph.Units {
			out.Steps = append(out.Steps, Artifact{
				Kind:    StepArtifact,
				Path:    filepath.Join(plan.Paths.StepsDir, u.FileName()),
				Content: StepFile(plan.Paths, u, ph.Preamble),
			})
		}
	}
	out.Plan = Artifact{
		Kind:    OrchestratorArtifact,
		Path:    plan.Paths.PlanPath,
		Content: OrchestratorPlan(plan, s.Orchestrator),
	}
	return out, nil
}

// Write installs the artifacts. The steps directory is replaced as a whole so
// files from an earlier renumbering do not survive.
func (o *Output) Write(log *zap.Logger) ([]Artifact, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var written []Artifact
	for _, a := range o.Agents {
		if err := fsutil.WriteFile(a.Path, []byte(a.Content), 0644); err != nil {
			return written, fmt.Errorf("writing agent %s: %w", a.Path, err)
		}
		log.Debug("wrote agent", zap.String("path", a.Path))
		written = append(written, a)
	}

	files := make(map[string][]byte, len(o.Steps))
	for _, a := range o.Steps {
		files[filepath.Base(a.Path)] = []byte(a.Content)
	}
	if _, err := fsutil.ReplaceDir(o.StepsDir, files); err != nil {
		return written, fmt.Errorf("writing steps: %w", err)
	}
	log.Debug("replaced steps directory", zap.String("dir", o.StepsDir), zap.Int("files", len(files)))
	written = append(written, o.Steps...)

	if err := fsutil.WriteFile(o.Plan.Path, []byte(o.Plan.Content), 0644); err != nil {
		return written, fmt.Errorf("writing orchestrator plan: %w", err)
	}
	log.Debug("wrote orchestrator plan", zap.String("path", o.Plan.Path))
	written = append(written, o.Plan)
	return written, nil
}

// StagePaths lists what to stage: each agent, the whole steps directory so
// removed step files are staged too, and the plan.
func (o *Output) StagePaths() []string {
	var paths []string
	for _, a := range o.Agents {
		paths = append(paths, a.Path)
	}
	return append(paths, o.StepsDir, o.Plan.Path)
}
