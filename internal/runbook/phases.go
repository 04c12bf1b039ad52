package runbook

import (
	"sort"
	"strings"

	"github.com/jorge-barreto/runbook/internal/scan"
)

// PhaseSegments splits body into per-phase text with fenced blocks removed,
// so example headers inside code never influence phase type inference.
// Text before the first marker belongs to phase 1.
func PhaseSegments(body string) map[int]string {
	lines := scan.Classify(scan.Split(body))
	phaseOf := phaseMap(lines)
	bufs := make(map[int][]string)
	for i, l := range lines {
		if l.InFence() {
			continue
		}
		bufs[phaseOf[i]] = append(bufs[phaseOf[i]], l.Raw)
	}
	out := make(map[int]string, len(bufs))
	for n, b := range bufs {
		out[n] = strings.Join(b, "\n")
	}
	return out
}

// InferPhaseType classifies a fence-stripped phase segment: tdd when it holds
// a cycle header, inline when its marker was annotated, general otherwise.
func InferPhaseType(segment string, inline bool) Type {
	for _, l := range scan.Classify(scan.Split(segment)) {
		if isUnitHeader(l) && cycleTitleRe.MatchString(strings.TrimSpace(l.Title)) {
			return TDD
		}
	}
	if inline {
		return Inline
	}
	return General
}

// PhaseNumbers lists, in ascending order, every phase that owns a unit or an
// inline body.
func (s *Sections) PhaseNumbers() []int {
	seen := make(map[int]bool)
	for _, st := range s.Steps {
		seen[st.Phase] = true
	}
	for _, c := range s.Cycles {
		seen[c.Phase] = true
	}
	for _, ip := range s.Inline {
		seen[ip.Phase] = true
	}
	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// InlineFor returns the inline body declared for phase n.
func (s *Sections) InlineFor(n int) (InlinePhase, bool) {
	for _, ip := range s.Inline {
		if ip.Phase == n {
			return ip, true
		}
	}
	return InlinePhase{}, false
}

// CountUnits counts step and cycle headers outside fenced blocks.
func CountUnits(body string) (steps, cycles int) {
	for _, l := range scan.Classify(scan.Split(body)) {
		if !isUnitHeader(l) {
			continue
		}
		if cycleTitleRe.MatchString(strings.TrimSpace(l.Title)) {
			cycles++
		} else {
			steps++
		}
	}
	return steps, cycles
}

// HasSection reports whether body contains the H2 section named title.
func HasSection(body, title string) bool {
	for _, l := range scan.Classify(scan.Split(body)) {
		if l.Kind == scan.Header && l.Level == 2 && strings.TrimSpace(l.Title) == title {
			return true
		}
	}
	return false
}

// HasPhaseMarker reports whether body declares any phase marker.
func HasPhaseMarker(body string) bool {
	for _, l := range scan.Classify(scan.Split(body)) {
		if l.Kind == scan.PhaseMarker {
			return true
		}
	}
	return false
}
