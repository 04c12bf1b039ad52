// Package runbook parses runbook markdown into a typed intermediate
// representation: frontmatter, common context, orchestrator instructions,
// steps, TDD cycles, inline phases, and the phase each unit belongs to.
package runbook

import (
	"fmt"
	"strings"
)

// Type is the declared shape of a runbook.
type Type string

const (
	General Type = "general"
	TDD     Type = "tdd"
	Mixed   Type = "mixed"
	Inline  Type = "inline"
)

// ParseType maps a frontmatter value onto a Type.
func ParseType(s string) (Type, bool) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case General, TDD, Mixed, Inline:
		return t, true
	}
	return General, false
}

// Execution tiers, least to most capable.
const (
	Haiku  = "haiku"
	Sonnet = "sonnet"
	Opus   = "opus"
)

// MostCapable is the tier required for sensitive artifact paths.
const MostCapable = Opus

// ValidModel reports whether name is a known execution tier.
func ValidModel(name string) bool {
	switch name {
	case Haiku, Sonnet, Opus:
		return true
	}
	return false
}

// Document is one runbook: its source path, parsed frontmatter and body.
type Document struct {
	Path        string
	Frontmatter Frontmatter
	Body        string
	// Offset is the number of source lines consumed by the frontmatter block.
	Offset int
}

// Step is a "## Step X.Y: Title" section.
type Step struct {
	Number string
	Major  int
	Minor  int
	Title  string
	Body   string
	Phase  int
	Line   int
}

// Cycle is a "### Cycle X.Y: Title" TDD unit.
type Cycle struct {
	Major int
	Minor int
	Title string
	Body  string
	Phase int
	Line  int
}

// ID returns the dotted "major.minor" identifier.
func (c Cycle) ID() string {
	return fmt.Sprintf("%d.%d", c.Major, c.Minor)
}

// Phase is one "### Phase N:" marker and the free text before its first unit.
type Phase struct {
	Number   int
	Title    string
	Model    string
	Inline   bool
	Preamble string
	Line     int
}

// InlinePhase is the content of a phase annotated "(type: inline)". It is
// executed by the orchestrator directly rather than through step files.
type InlinePhase struct {
	Phase int
	Title string
	Model string
	Body  string
	Line  int
}

// Sections is the extracted structure of a runbook body. Slices keep
// document order, which is the default execution order.
type Sections struct {
	CommonContext string
	Orchestrator  string
	Steps         []Step
	Cycles        []Cycle
	Inline        []InlinePhase
	Phases        []Phase
}

// Phase returns the first marker declared for phase n.
func (s *Sections) Phase(n int) (Phase, bool) {
	for _, p := range s.Phases {
		if p.Number == n {
			return p, true
		}
	}
	return Phase{}, false
}

// Empty reports whether no executable unit was found.
func (s *Sections) Empty() bool {
	return len(s.Steps) == 0 && len(s.Cycles) == 0 && len(s.Inline) == 0
}

func (s *Sections) shift(offset int) {
	if offset == 0 {
		return
	}
	for i := range s.Steps {
		s.Steps[i].Line += offset
	}
	for i := range s.Cycles {
		s.Cycles[i].Line += offset
	}
	for i := range s.Inline {
		s.Inline[i].Line += offset
	}
	for i := range s.Phases {
		s.Phases[i].Line += offset
	}
}
