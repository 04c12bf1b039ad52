package compiler

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/runbook/internal/semantic"
	"github.com/jorge-barreto/runbook/internal/ux"
)

// CheckRequest selects which semantic checks run and how.
type CheckRequest struct {
	Checks []string
	Skip   map[string]bool
	// KnownFiles extends the configured lifecycle allow-list.
	KnownFiles []string
	RunID      string
	Now        time.Time
}

// Validate runs the requested semantic checks against path, writes one
// report per check in request order, and returns the worst outcome. The
// checks only read the parsed runbook, so they run concurrently.
func (c *Compiler) Validate(path string, req CheckRequest) (semantic.Outcome, error) {
	in, err := c.Load(path)
	if err != nil {
		return semantic.Fail, err
	}
	in.Diags.Render(c.Stderr)
	if in.Sections == nil {
		return semantic.Fail, ErrInvalid
	}

	patterns, err := c.Config.Patterns()
	if err != nil {
		return semantic.Fail, err
	}
	opts := semantic.Options{
		Rules:      semantic.Rules{Prefixes: c.Config.SensitivePrefixes, Patterns: patterns},
		KnownFiles: append(append([]string(nil), c.Config.KnownFiles...), req.KnownFiles...),
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	results := make([]semantic.Result, len(req.Checks))
	var g errgroup.Group
	for i, check := range req.Checks {
		if req.Skip[check] {
			results[i] = semantic.Result{Check: check, Skipped: true}
			continue
		}
		g.Go(func() error {
			res, err := semantic.Run(check, in.Doc, in.Sections, opts)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return semantic.Fail, err
	}

	var outcomes []semantic.Outcome
	for _, res := range results {
		reportPath := semantic.ReportPath(path, in.IsDir, c.Config.PlansDir, res.Check)
		report := semantic.Report{Runbook: path, Date: now, RunID: req.RunID, Result: res}
		if err := report.Write(reportPath); err != nil {
			return semantic.Fail, err
		}
		c.Log.Debug("wrote report",
			zap.String("check", res.Check),
			zap.String("path", reportPath),
			zap.Int("violations", len(res.Violations)),
			zap.Int("ambiguous", len(res.Ambiguous)),
		)
		ux.Outcome(c.Stdout, res.Check, res.Outcome().String(), reportPath)
		outcomes = append(outcomes, res.Outcome())
	}
	return semantic.Worst(outcomes...), nil
}
