package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a line means structurally.
type Kind int

const (
	Text Kind = iota
	FenceDelim
	Fenced
	Header
	PhaseMarker
)

func (k Kind) String() string {
	switch k {
	case FenceDelim:
		return "fence-delim"
	case Fenced:
		return "fenced"
	case Header:
		return "header"
	case PhaseMarker:
		return "phase-marker"
	default:
		return "text"
	}
}

// Line is one classified line of a document.
type Line struct {
	Index int
	Raw   string
	Kind  Kind
	Level int    // number of leading '#' for Header and PhaseMarker
	Title string // header text after the hashes

	// Populated for PhaseMarker only.
	Phase  int
	Inline bool
	Model  string
}

// InFence reports whether the line is part of a fenced block.
func (l Line) InFence() bool {
	return l.Kind == Fenced || l.Kind == FenceDelim
}

// IsH2 reports whether the line is a level-2 heading, phase markers included.
func (l Line) IsH2() bool {
	return (l.Kind == Header || l.Kind == PhaseMarker) && l.Level == 2
}

var (
	headerRe     = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	phaseRe      = regexp.MustCompile(`^(#{2,3})\s+Phase\s+(\d+)\s*:(.*)$`)
	annotationRe = regexp.MustCompile(`\(([^()]*)\)\s*$`)
)

// Split breaks content into lines, dropping carriage returns.
func Split(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// Classify scans lines once and tags each one. Fence state gates header
// recognition: a header inside a fenced block is reported as Fenced.
func Classify(lines []string) []Line {
	var t Tracker
	out := make([]Line, len(lines))
	for i, raw := range lines {
		wasIn := t.InFence()
		in := t.Feed(raw)
		l := Line{Index: i, Raw: raw}
		switch {
		case in && (!wasIn || !t.InFence()):
			l.Kind = FenceDelim
		case in:
			l.Kind = Fenced
		default:
			classifyHeader(&l)
		}
		out[i] = l
	}
	return out
}

func classifyHeader(l *Line) {
	if m := phaseRe.FindStringSubmatch(l.Raw); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			l.Kind = PhaseMarker
			l.Level = len(m[1])
			l.Phase = n
			l.Title = strings.TrimSpace(m[3])
			parseAnnotation(l)
			return
		}
	}
	if m := headerRe.FindStringSubmatch(l.Raw); m != nil {
		l.Kind = Header
		l.Level = len(m[1])
		l.Title = m[2]
		return
	}
	l.Kind = Text
}

// parseAnnotation reads a trailing "(type: inline, model: opus)" group off a
// phase marker title.
func parseAnnotation(l *Line) {
	m := annotationRe.FindStringSubmatchIndex(l.Title)
	if m == nil {
		return
	}
	recognized := false
	for _, part := range strings.Split(l.Title[m[2]:m[3]], ",") {
		key, value, found := strings.Cut(part, ":")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.Trim(strings.TrimSpace(value), "`"))
		switch {
		case !found && key == "inline":
			l.Inline = true
			recognized = true
		case key == "type":
			l.Inline = value == "inline"
			recognized = true
		case key == "model":
			l.Model = value
			recognized = true
		}
	}
	if recognized {
		l.Title = strings.TrimSpace(l.Title[:m[0]])
	}
}
