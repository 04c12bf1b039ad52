// Package assemble merges a directory of runbook-phase-N.md fragments into a
// single runbook document.
package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/runbook"
	"github.com/jorge-barreto/runbook/internal/scan"
)

var fragmentRe = regexp.MustCompile(`^runbook-phase-(\d+)\.md$`)

// Fragment is one phase file.
type Fragment struct {
	Number int
	Path   string
}

// Result is the assembled document.
type Result struct {
	Name      string
	Type      runbook.Type
	Content   string // frontmatter plus body
	Fragments []Fragment
	// Boilerplate is true when the default TDD Common Context was injected.
	Boilerplate bool
}

// Options control frontmatter synthesis.
type Options struct {
	// DefaultModel is used when no fragment declares a model.
	DefaultModel string
	Log          *zap.Logger
}

// IsFragment reports whether a file name is a phase fragment.
func IsFragment(name string) bool {
	return fragmentRe.MatchString(name)
}

// Fragments lists the phase files in dir ordered by number. Two files that
// parse to the same number are an error.
func Fragments(dir string) ([]Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var frags []Fragment
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := fragmentRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad phase number: %w", e.Name(), err)
		}
		if prev, dup := seen[n]; dup {
			return nil, fmt.Errorf("%s and %s both declare phase %d", prev, e.Name(), n)
		}
		seen[n] = e.Name()
		frags = append(frags, Fragment{Number: n, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].Number < frags[j].Number })
	return frags, nil
}

// checkSequence requires a contiguous run starting at 0 or 1.
func checkSequence(dir string, frags []Fragment) error {
	present := make(map[int]bool, len(frags))
	for _, f := range frags {
		present[f.Number] = true
	}
	start := 1
	if present[0] {
		start = 0
	}
	last := frags[len(frags)-1].Number
	var missing []int
	for n := start; n <= last; n++ {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &GapError{Dir: dir, Missing: missing}
	}
	return nil
}

// Dir assembles the fragments in dir. It returns a nil Result and nil error
// when dir holds no phase files, meaning it is not a phase directory.
func Dir(dir string, opts Options) (*Result, diag.List, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	frags, err := Fragments(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(frags) == 0 {
		return nil, nil, nil
	}
	if err := checkSequence(dir, frags); err != nil {
		return nil, nil, err
	}

	var diags diag.List
	var name, model string
	bodies := make([]string, len(frags))
	hasCommon := false
	var kind runbook.Type

	for i, f := range frags {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, diags, fmt.Errorf("reading fragment: %w", err)
		}
		fm, body, offset, fmDiags := runbook.ParseFrontmatter(string(data))
		for _, d := range fmDiags {
			d.Message = fmt.Sprintf("%s: %s", filepath.Base(f.Path), d.Message)
			d.Line = 0
			diags = append(diags, d)
		}
		if name == "" {
			name = fm.Name
		}
		if model == "" {
			model = fm.Model
		}

		steps, cycles := runbook.CountUnits(body)
		// The first fragment decides the style of the whole document.
		if i == 0 {
			switch {
			case cycles > 0:
				kind = runbook.TDD
			case steps > 0:
				kind = runbook.General
			default:
				return nil, diags, fmt.Errorf("%s: %w", filepath.Base(f.Path), ErrNoUnits)
			}
		}
		hasCommon = hasCommon || runbook.HasSection(body, runbook.CommonContextTitle)

		body = strings.TrimSpace(body)
		if !runbook.HasPhaseMarker(body) {
			body = fmt.Sprintf("### Phase %d: %s\n\n%s", f.Number, fragmentTitle(body, f.Number), body)
		}
		bodies[i] = body
		log.Debug("read phase fragment",
			zap.String("file", f.Path),
			zap.Int("phase", f.Number),
			zap.Int("steps", steps),
			zap.Int("cycles", cycles),
			zap.Int("frontmatter_lines", offset))
	}

	if name == "" {
		name = filepath.Base(filepath.Clean(dir))
	}
	if model == "" {
		model = opts.DefaultModel
	}
	header, err := runbook.Frontmatter{Name: name, Type: kind, Model: model}.Marshal()
	if err != nil {
		return nil, diags, err
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	res := &Result{Name: name, Type: kind, Fragments: frags}
	if kind == runbook.TDD && !hasCommon {
		b.WriteString(tddCommonContext)
		b.WriteString("\n")
		res.Boilerplate = true
	}
	b.WriteString(strings.Join(bodies, "\n\n"))
	b.WriteString("\n")
	res.Content = b.String()

	log.Debug("assembled runbook",
		zap.String("dir", dir),
		zap.String("type", string(kind)),
		zap.Int("fragments", len(frags)),
		zap.Bool("boilerplate", res.Boilerplate))
	return res, diags, nil
}

// fragmentTitle uses the fragment's first H1 as the phase title.
func fragmentTitle(body string, n int) string {
	for _, l := range scan.Classify(scan.Split(body)) {
		if l.Kind == scan.Header && l.Level == 1 {
			if t := strings.TrimSpace(l.Title); t != "" {
				return t
			}
		}
	}
	return fmt.Sprintf("Phase %d", n)
}
