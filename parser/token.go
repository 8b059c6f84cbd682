package parser

import "strings"

// Line-level recognizers. Each one either matches a complete lexical
// pattern at the start of its input and returns the payload, or reports no
// match; there is no partial failure and no backtracking across tokens.

// listMarker describes one recognized list bullet.
type listMarker struct {
	ordered  bool
	start    int
	checkbox bool
	checked  bool
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// matchHeading recognizes an ATX heading: 1-6 hashes, at least one space,
// then the text. A trailing run of hashes and spaces is stripped. Levels
// deeper than 6 are capped.
func matchHeading(line string) (level int, content string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || !isSpace(line[n]) {
		return 0, "", false
	}
	level = n
	if level > 6 {
		level = 6
	}
	content = strings.TrimLeft(line[n:], " \t")
	content = strings.TrimRight(content, "# ")
	return level, content, true
}

// matchThematicBreak recognizes a run of three or more identical -, * or _
// characters at the start of the line.
func matchThematicBreak(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return n >= 3
}

// matchFenceStart recognizes ``` or ~~~ with an optional language tag
// immediately after the fence.
func matchFenceStart(line string) (fence, lang string, ok bool) {
	switch {
	case strings.HasPrefix(line, "```"):
		fence = "```"
	case strings.HasPrefix(line, "~~~"):
		fence = "~~~"
	default:
		return "", "", false
	}
	rest := line[3:]
	n := 0
	for n < len(rest) && isWordByte(rest[n]) {
		n++
	}
	return fence, rest[:n], true
}

func isWordByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// matchEnvironmentStart recognizes ::: kind {#label}. A bare ::: line is
// not a start; it closes an environment.
func matchEnvironmentStart(line string) (kind, label string, ok bool) {
	if !strings.HasPrefix(line, ":::") {
		return "", "", false
	}
	rest := strings.TrimLeft(line[3:], " \t")
	n := 0
	for n < len(rest) && isWordByte(rest[n]) {
		n++
	}
	if n == 0 {
		return "", "", false
	}
	kind = rest[:n]
	rest = strings.TrimLeft(rest[n:], " \t")
	if strings.HasPrefix(rest, "{#") {
		if end := strings.IndexByte(rest, '}'); end > 2 {
			label = rest[2:end]
		}
	}
	return kind, label, true
}

// matchListMarker recognizes a checkbox, unordered or ordered bullet and
// returns the text after the marker.
func matchListMarker(line string) (m listMarker, rest string, ok bool) {
	if cm, r, ok := matchCheckbox(line); ok {
		return cm, r, true
	}
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*' || line[0] == '+') && isSpace(line[1]) {
		return listMarker{}, strings.TrimLeft(line[2:], " \t"), true
	}
	n := 0
	for n < len(line) && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n > 0 && n+1 < len(line) && (line[n] == '.' || line[n] == ')') && isSpace(line[n+1]) {
		start := 0
		for _, c := range line[:n] {
			start = start*10 + int(c-'0')
		}
		return listMarker{ordered: true, start: start}, strings.TrimLeft(line[n+2:], " \t"), true
	}
	return listMarker{}, "", false
}

func matchCheckbox(line string) (m listMarker, rest string, ok bool) {
	if line == "" || (line[0] != '-' && line[0] != '*' && line[0] != '+') {
		return listMarker{}, "", false
	}
	r := line[1:]
	n := 0
	for n < len(r) && isSpace(r[n]) {
		n++
	}
	if n == 0 {
		return listMarker{}, "", false
	}
	r = r[n:]
	if len(r) < 3 || r[0] != '[' || r[2] != ']' {
		return listMarker{}, "", false
	}
	var checked bool
	switch r[1] {
	case 'x', 'X':
		checked = true
	case ' ':
		checked = false
	default:
		return listMarker{}, "", false
	}
	return listMarker{checkbox: true, checked: checked}, strings.TrimLeft(r[3:], " \t"), true
}

// matchPageBreak recognizes all page-break spellings.
func matchPageBreak(line string) bool {
	switch line {
	case "---pagebreak---", `\pagebreak`, `\newpage`, "<!-- pagebreak -->", "<!-- newpage -->":
		return true
	}
	return false
}

// matchAppendixMarker recognizes all appendix-marker spellings.
func matchAppendixMarker(line string) bool {
	switch line {
	case "---appendix---", `\appendix`, "<!-- appendix -->":
		return true
	}
	return false
}

// isTableDelimiter reports whether the line is a pipe-table delimiter row:
// every cell made of - and : with at least one dash.
func isTableDelimiter(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	inner := strings.Trim(trimmed, "|")
	for _, cell := range strings.Split(inner, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		dashes := 0
		for i := 0; i < len(cell); i++ {
			switch cell[i] {
			case '-':
				dashes++
			case ':':
			default:
				return false
			}
		}
		if dashes == 0 {
			return false
		}
	}
	return true
}

// extractLabel splits a trailing {#label} annotation off a string.
func extractLabel(s string) (content, label string) {
	trimmed := strings.TrimRight(s, " \t")
	start := strings.LastIndex(trimmed, "{#")
	if start < 0 {
		return s, ""
	}
	end := strings.IndexByte(trimmed[start:], '}')
	if end < 0 {
		return s, ""
	}
	label = trimmed[start+2 : start+end]
	content = strings.TrimRight(trimmed[:start], " \t")
	return content, label
}
