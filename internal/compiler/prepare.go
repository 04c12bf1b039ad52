package compiler

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jorge-barreto/runbook/internal/generate"
	"github.com/jorge-barreto/runbook/internal/ux"
	"github.com/jorge-barreto/runbook/internal/validate"
	"github.com/jorge-barreto/runbook/internal/vcs"
)

// Prepare compiles the runbook at path into agents, step files and an
// orchestrator plan. Nothing is written when validation reports an error.
func (c *Compiler) Prepare(path string) (*generate.Output, error) {
	in, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	diags := in.Diags
	var plan *generate.Plan
	if in.Sections != nil {
		diags.Append(validate.Runbook(in.Doc, in.Sections))
	}
	if !diags.HasErrors() {
		paths := generate.DerivePaths(path, in.IsDir, c.Config.AgentsDir)
		built, more := generate.Build(in.Doc, in.Sections, paths)
		plan = built
		diags.Append(more)
	}
	diags.Render(c.Stderr)
	if diags.HasErrors() {
		return nil, ErrInvalid
	}

	baselines, err := generate.LoadBaselines(c.Config.BaselineDir)
	if err != nil {
		return nil, err
	}
	for _, f := range baselines.Fallback {
		c.Log.Debug("baseline missing, using built-in", zap.String("path", f))
	}

	out, err := generate.Generate(plan, in.Sections, baselines)
	if err != nil {
		return nil, err
	}
	written, err := out.Write(c.Log)
	for _, a := range written {
		ux.Created(c.Stdout, string(a.Kind), a.Path)
	}
	if err != nil {
		return nil, err
	}
	ux.PrintSummary(c.Stdout, summarize(plan))

	if c.Config.Stage {
		if err := c.stage(path, out.StagePaths()); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (c *Compiler) stage(path string, paths []string) error {
	stager := c.Stager
	if stager == nil {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		repo, err := vcs.Open(filepath.Dir(abs), c.Log)
		if errors.Is(err, vcs.ErrNotRepository) {
			ux.Warn(c.Stderr, "%s is not inside a git repository; generated files were not staged", path)
			return nil
		}
		if err != nil {
			return err
		}
		stager = repo
	}
	if err := stager.Stage(paths); err != nil {
		return fmt.Errorf("staging generated files: %w", err)
	}
	return nil
}

func summarize(plan *generate.Plan) ux.Summary {
	steps, cycles, inline := plan.Counts()
	s := ux.Summary{Name: plan.Paths.Name, Steps: steps, Cycles: cycles, Inline: inline}
	for _, ph := range plan.Phases {
		s.Phases = append(s.Phases, ux.PhaseLine{
			Number: ph.Number,
			Type:   string(ph.Type),
			Model:  ph.Model,
			Units:  len(ph.Units),
		})
	}
	return s
}
