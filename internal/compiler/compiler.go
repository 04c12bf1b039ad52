// Package compiler drives the runbook pipeline: read, parse, validate,
// generate, and stage.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jorge-barreto/runbook/internal/assemble"
	"github.com/jorge-barreto/runbook/internal/config"
	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
	"github.com/jorge-barreto/runbook/internal/vcs"
)

// ErrInvalid is returned when structural errors block generation. The
// errors themselves have already been written to Stderr.
var ErrInvalid = errors.New("runbook has structural errors")

// Compiler holds the collaborators shared by every command.
type Compiler struct {
	Config *config.Config
	Log    *zap.Logger
	Stdout io.Writer
	Stderr io.Writer
	// Stager overrides the git worktree lookup.
	Stager vcs.Stager
}

// New returns a Compiler writing to the process streams.
func New(cfg *config.Config, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{Config: cfg, Log: log, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Input is a loaded runbook. Sections is nil when the document could not be
// split into sections; Diags then holds the reason.
type Input struct {
	Path     string
	IsDir    bool
	Doc      *runbook.Document
	Sections *runbook.Sections
	Diags    diag.List
}

// Load reads a runbook file, or assembles a directory of phase fragments.
func (c *Compiler) Load(path string) (*Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading runbook: %w", err)
	}
	in := &Input{Path: path, IsDir: info.IsDir()}

	var content string
	if in.IsDir {
		res, diags, err := assemble.Dir(path, assemble.Options{DefaultModel: c.Config.DefaultModel, Log: c.Log})
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, fmt.Errorf("%s: no runbook-phase-N.md files found", path)
		}
		in.Diags.Append(diags)
		content = res.Content
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading runbook: %w", err)
		}
		content = string(data)
	}

	doc, sections, diags, err := runbook.Parse(path, content)
	in.Doc = doc
	in.Diags.Append(diags)
	if err != nil {
		var ie *runbook.IdentifierError
		if !errors.As(err, &ie) {
			return nil, err
		}
		in.Diags.Errorf(ie.Line, "%s", ie.Error())
		return in, nil
	}
	in.Sections = sections
	c.Log.Debug("parsed runbook",
		zap.String("path", path),
		zap.Bool("dir", in.IsDir),
		zap.Int("steps", len(sections.Steps)),
		zap.Int("cycles", len(sections.Cycles)),
		zap.Int("inline", len(sections.Inline)),
		zap.Int("phases", len(sections.Phases)),
	)
	return in, nil
}
