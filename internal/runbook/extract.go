package runbook

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jorge-barreto/runbook/internal/diag"
	"github.com/jorge-barreto/runbook/internal/scan"
)

// Section titles recognised by exact match.
const (
	CommonContextTitle = "Common Context"
	OrchestratorTitle  = "Orchestrator Instructions"
)

var (
	stepTitleRe  = regexp.MustCompile(`^Step\s+(\d+)\.(\d+):\s*(.*)$`)
	cycleTitleRe = regexp.MustCompile(`^Cycle\s+(\d+)\.(\d+):\s*(.*)$`)
)

// Parse reads a whole runbook file: frontmatter, then the body sections.
// Line numbers in the result refer to the original content.
func Parse(path, content string) (*Document, *Sections, diag.List, error) {
	fm, body, offset, diags := ParseFrontmatter(content)
	doc := &Document{Path: path, Frontmatter: fm, Body: body, Offset: offset}
	sections, more, err := Extract(body)
	diags.Append(shiftDiags(more, offset))
	if err != nil {
		var ie *IdentifierError
		if errors.As(err, &ie) {
			ie.FirstLine += offset
			ie.Line += offset
		}
		return doc, nil, diags, err
	}
	sections.shift(offset)
	return doc, sections, diags, nil
}

func shiftDiags(l diag.List, offset int) diag.List {
	for i := range l {
		if l[i].Line > 0 {
			l[i].Line += offset
		}
	}
	return l
}

// Extract splits a frontmatter-free body into sections. A duplicated step
// number is returned as an *IdentifierError wrapping ErrDuplicateIdentifier.
func Extract(body string) (*Sections, diag.List, error) {
	lines := scan.Classify(scan.Split(body))
	phaseOf := phaseMap(lines)

	s := &Sections{Phases: extractPhases(lines)}
	diags, err := extractSections(lines, phaseOf, s)
	if err != nil {
		return nil, diags, err
	}
	s.Inline = extractInline(lines)
	s.Cycles = cyclesFrom(lines, phaseOf)
	return s, diags, nil
}

// phaseMap records, for every line, the phase in effect at that position.
// Phase 1 applies until the first marker.
func phaseMap(lines []scan.Line) []int {
	phaseOf := make([]int, len(lines))
	current := 1
	for i, l := range lines {
		if l.Kind == scan.PhaseMarker {
			current = l.Phase
		}
		phaseOf[i] = current
	}
	return phaseOf
}

func extractPhases(lines []scan.Line) []Phase {
	var phases []Phase
	for i, l := range lines {
		if l.Kind != scan.PhaseMarker {
			continue
		}
		phases = append(phases, Phase{
			Number:   l.Phase,
			Title:    l.Title,
			Model:    l.Model,
			Inline:   l.Inline,
			Preamble: preamble(lines[i+1:]),
			Line:     i + 1,
		})
	}
	return phases
}

// preamble collects the text after a phase marker up to the first unit
// header, the next marker, or the next H2.
func preamble(rest []scan.Line) string {
	var buf []string
	for _, l := range rest {
		if l.Kind == scan.PhaseMarker || l.IsH2() || isUnitHeader(l) {
			break
		}
		buf = append(buf, l.Raw)
	}
	return strings.TrimSpace(strings.Join(buf, "\n"))
}

func isUnitHeader(l scan.Line) bool {
	if l.Kind != scan.Header {
		return false
	}
	if l.Level == 2 && stepTitleRe.MatchString(l.Title) {
		return true
	}
	return (l.Level == 2 || l.Level == 3) && cycleTitleRe.MatchString(l.Title)
}

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionCommon
	sectionOrchestrator
	sectionStep
)

func extractSections(lines []scan.Line, phaseOf []int, s *Sections) (diag.List, error) {
	var diags diag.List
	cur := sectionNone
	var buf []string
	var step Step
	seen := make(map[string]int)

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		switch cur {
		case sectionCommon:
			s.CommonContext = content
		case sectionOrchestrator:
			s.Orchestrator = content
		case sectionStep:
			step.Body = content
			s.Steps = append(s.Steps, step)
		}
		cur = sectionNone
		buf = nil
	}

	for i, l := range lines {
		if l.Kind == scan.PhaseMarker {
			flush()
			continue
		}
		if l.Kind != scan.Header || l.Level != 2 {
			if cur != sectionNone {
				buf = append(buf, l.Raw)
			}
			continue
		}

		flush()
		title := strings.TrimSpace(l.Title)
		switch {
		case title == CommonContextTitle:
			cur = sectionCommon
		case title == OrchestratorTitle:
			cur = sectionOrchestrator
		case stepTitleRe.MatchString(title):
			m := stepTitleRe.FindStringSubmatch(title)
			major, _ := strconv.Atoi(m[1])
			minor, _ := strconv.Atoi(m[2])
			number := m[1] + "." + m[2]
			if first, dup := seen[number]; dup {
				return diags, &IdentifierError{Kind: "step", ID: number, FirstLine: first, Line: i + 1}
			}
			seen[number] = i + 1
			step = Step{
				Number: number,
				Major:  major,
				Minor:  minor,
				Title:  strings.TrimSpace(m[3]),
				Phase:  phaseOf[i],
				Line:   i + 1,
			}
			cur = sectionStep
		case strings.HasPrefix(title, "Step "):
			diags.Warnf(i+1, "malformed step header %q (expected \"## Step X.Y: Title\")", l.Raw)
			continue
		default:
			continue
		}
		buf = []string{l.Raw}
	}
	flush()
	return diags, nil
}

// extractInline gathers the text under each inline phase marker, up to the
// next phase marker or H2 header.
func extractInline(lines []scan.Line) []InlinePhase {
	var out []InlinePhase
	var cur *InlinePhase
	var buf []string

	flush := func() {
		if cur != nil {
			cur.Body = strings.TrimSpace(strings.Join(buf, "\n"))
			out = append(out, *cur)
		}
		cur = nil
		buf = nil
	}

	for i, l := range lines {
		switch {
		case l.Kind == scan.PhaseMarker:
			flush()
			if l.Inline {
				cur = &InlinePhase{Phase: l.Phase, Title: l.Title, Model: l.Model, Line: i + 1}
			}
		case l.IsH2():
			flush()
		case cur != nil:
			buf = append(buf, l.Raw)
		}
	}
	flush()
	return out
}
