package scan

import "strings"

// Tracker follows fenced code block state one line at a time.
// Backtick and tilde fences are independent: a run of one character never
// closes a fence opened with the other.
type Tracker struct {
	char  byte // '`' or '~' while inside a fence, 0 otherwise
	count int  // length of the opening run
}

// InFence reports whether the tracker is currently inside a fenced block.
func (t *Tracker) InFence() bool {
	return t.char != 0
}

// Feed advances the tracker past line and reports whether line belongs to a
// fenced block. Opening and closing delimiter lines count as fenced; the line
// after a matching closer is the first one reported outside the fence.
func (t *Tracker) Feed(line string) bool {
	ch, n, rest, ok := fenceRun(line)
	if t.char == 0 {
		if !ok {
			return false
		}
		// Backtick info strings may not contain backticks (inline code, not a fence).
		if ch == '`' && strings.ContainsRune(rest, '`') {
			return false
		}
		t.char, t.count = ch, n
		return true
	}
	if ok && ch == t.char && n >= t.count && strings.TrimSpace(rest) == "" {
		t.char, t.count = 0, 0
	}
	return true
}

// Mask returns, for each line, whether it is part of a fenced block.
func Mask(lines []string) []bool {
	var t Tracker
	mask := make([]bool, len(lines))
	for i, line := range lines {
		mask[i] = t.Feed(line)
	}
	return mask
}

// fenceRun reports the fence character and run length at the start of line.
// Up to three spaces of indentation are allowed, as in CommonMark.
func fenceRun(line string) (ch byte, n int, rest string, ok bool) {
	line = strings.TrimRight(line, "\r")
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 {
		return 0, 0, "", false
	}
	s := line[indent:]
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0, "", false
	}
	ch = s[0]
	for n < len(s) && s[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	return ch, n, s[n:], true
}
