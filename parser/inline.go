package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/acamark/acamark/ast"
)

// ParseInlines parses a span of text into inline nodes. Recognizers run in
// priority order; when none matches, plain text is consumed up to the next
// character that could open a span, and a single-character fallback
// guarantees progress.
func ParseInlines(input string) []ast.Inline {
	var inlines []ast.Inline
	remaining := input

	for remaining != "" {
		if node, rest, ok := tryInline(remaining); ok {
			// Label erasure produces a nil node.
			if node != nil {
				inlines = append(inlines, node)
			}
			remaining = rest
			continue
		}

		text, rest := consumeText(remaining)
		if text != "" {
			inlines = appendText(inlines, text)
			remaining = rest
			continue
		}
		if rest == remaining {
			// No rule applies here; emit one character and move on.
			_, size := utf8.DecodeRuneInString(remaining)
			inlines = append(inlines, &ast.Text{Text: remaining[:size]})
			remaining = remaining[size:]
			continue
		}
		remaining = rest
	}

	return inlines
}

// appendText splits consumed text on newlines, emitting hard breaks after
// lines ending in two spaces or a backslash and soft breaks otherwise.
func appendText(inlines []ast.Inline, text string) []ast.Inline {
	if !strings.Contains(text, "\n") {
		return append(inlines, &ast.Text{Text: text})
	}
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if part != "" {
			inlines = append(inlines, &ast.Text{Text: part})
		}
		if i < len(parts)-1 {
			if strings.HasSuffix(part, "  ") || strings.HasSuffix(part, "\\") {
				inlines = append(inlines, &ast.HardBreak{})
			} else {
				inlines = append(inlines, &ast.SoftBreak{})
			}
		}
	}
	return inlines
}

// tryInline attempts every span recognizer at the start of input. A nil
// node with ok set means the span was consumed but produces no output.
func tryInline(input string) (node ast.Inline, rest string, ok bool) {
	// Display math in an inline context is inline math.
	if strings.HasPrefix(input, "$$") {
		if end := strings.Index(input[2:], "$$"); end >= 0 {
			return &ast.InlineMath{Content: input[2 : 2+end]}, input[2+end+2:], true
		}
	}

	if strings.HasPrefix(input, "$") && !strings.HasPrefix(input, "$$") {
		if end := strings.Index(input[1:], "$"); end >= 0 {
			return &ast.InlineMath{Content: input[1 : 1+end]}, input[1+end+1:], true
		}
	}

	for _, d := range []string{"**", "__"} {
		if strings.HasPrefix(input, d) {
			if end := strings.Index(input[2:], d); end >= 0 {
				inner := ParseInlines(input[2 : 2+end])
				return &ast.Strong{Content: inner}, input[2+end+2:], true
			}
		}
	}

	for _, d := range []string{"*", "_"} {
		if strings.HasPrefix(input, d) && !strings.HasPrefix(input, d+d) {
			if end := strings.Index(input[1:], d); end >= 0 {
				inner := ParseInlines(input[1 : 1+end])
				return &ast.Emphasis{Content: inner}, input[1+end+1:], true
			}
		}
	}

	if strings.HasPrefix(input, "~~") {
		if end := strings.Index(input[2:], "~~"); end >= 0 {
			inner := ParseInlines(input[2 : 2+end])
			return &ast.Strikethrough{Content: inner}, input[2+end+2:], true
		}
	}

	// ~x~ subscript and ^x^ superscript; the span must be non-empty and
	// free of whitespace.
	if strings.HasPrefix(input, "~") && !strings.HasPrefix(input, "~~") {
		if content, rest, ok := matchTightSpan(input, '~'); ok {
			return &ast.Subscript{Content: ParseInlines(content)}, rest, true
		}
	}

	if strings.HasPrefix(input, "`") && !strings.HasPrefix(input, "```") {
		if end := strings.Index(input[1:], "`"); end >= 0 {
			return &ast.Code{Text: input[1 : 1+end]}, input[1+end+1:], true
		}
	}

	if strings.HasPrefix(input, "[@") || strings.HasPrefix(input, "[-@") {
		if node, rest, ok := matchBracketCitation(input); ok {
			return node, rest, true
		}
	}

	if strings.HasPrefix(input, "^[") {
		if end := strings.Index(input[2:], "]"); end >= 0 {
			inner := ParseInlines(input[2 : 2+end])
			return &ast.Footnote{Content: inner}, input[2+end+1:], true
		}
	}

	if strings.HasPrefix(input, "^") && !strings.HasPrefix(input, "^[") {
		if content, rest, ok := matchTightSpan(input, '^'); ok {
			return &ast.Superscript{Content: ParseInlines(content)}, rest, true
		}
	}

	if strings.HasPrefix(input, "[^") {
		if node, rest, ok := matchFootnoteRef(input); ok {
			return node, rest, true
		}
	}

	if strings.HasPrefix(input, "@") && !strings.HasPrefix(input, "[@") {
		if node, rest, ok := matchReference(input); ok {
			return node, rest, true
		}
	}

	// Labels are metadata, already extracted by the block parser; inline
	// occurrences are erased.
	if strings.HasPrefix(input, "{#") {
		if end := strings.IndexByte(input, '}'); end > 2 {
			return nil, input[end+1:], true
		}
	}

	if strings.HasPrefix(input, "[") && !strings.HasPrefix(input, "[^") && !strings.HasPrefix(input, "[@") {
		if node, rest, ok := matchLink(input); ok {
			return node, rest, true
		}
	}

	if strings.HasPrefix(input, "![") {
		if node, rest, ok := matchImage(input); ok {
			return node, rest, true
		}
	}

	if strings.HasPrefix(input, "<") {
		if node, rest, ok := matchRawHTML(input); ok {
			return node, rest, true
		}
	}

	return nil, "", false
}

// matchTightSpan matches d content d where content has no whitespace.
func matchTightSpan(input string, d byte) (content, rest string, ok bool) {
	end := strings.IndexByte(input[1:], d)
	if end <= 0 {
		return "", "", false
	}
	content = input[1 : 1+end]
	if strings.ContainsAny(content, " \t\n") {
		return "", "", false
	}
	return content, input[1+end+1:], true
}

// matchBracketCitation matches [@key, locator; @key2] and the year-only
// form [-@key].
func matchBracketCitation(input string) (ast.Inline, string, bool) {
	style := ast.Parenthetical
	body := input[2:]
	if strings.HasPrefix(input, "[-@") {
		style = ast.YearOnly
		body = input[3:]
	}
	end := strings.Index(body, "]")
	if end < 0 {
		return nil, "", false
	}
	content := body[:end]
	rest := body[end+1:]

	cite := &ast.Citation{Style: style}
	for i, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		key, locator, found := strings.Cut(part, ",")
		key = strings.TrimPrefix(strings.TrimSpace(key), "@")
		cite.Keys = append(cite.Keys, key)
		if i == 0 && found {
			cite.Locator = strings.TrimSpace(locator)
		}
	}
	return cite, rest, true
}

func matchFootnoteRef(input string) (ast.Inline, string, bool) {
	rest := input[2:]
	n := 0
	for n < len(rest) && isWordByte(rest[n]) {
		n++
	}
	if n == 0 || n >= len(rest) || rest[n] != ']' {
		return nil, "", false
	}
	return &ast.Footnote{ID: rest[:n]}, rest[n+1:], true
}

// matchReference matches @label. A trailing dash turns the match into an
// author-only citation (@key-); otherwise the resolver decides later
// whether the label names a registry entry or a bibliography key.
func matchReference(input string) (ast.Inline, string, bool) {
	rest := input[1:]
	n := 0
	for n < len(rest) && (isWordByte(rest[n]) || rest[n] == ':') {
		n++
	}
	if n == 0 {
		return nil, "", false
	}
	label := rest[:n]
	if len(label) > 1 && strings.HasSuffix(label, "-") {
		return &ast.Citation{
			Keys:  []string{label[:len(label)-1]},
			Style: ast.AuthorOnly,
		}, rest[n:], true
	}
	return &ast.Reference{Label: label}, rest[n:], true
}

func matchLink(input string) (ast.Inline, string, bool) {
	textEnd := matchedDelimiter(input, '[', ']')
	if textEnd < 0 {
		return nil, "", false
	}
	text := input[1:textEnd]
	afterText := input[textEnd+1:]
	if !strings.HasPrefix(afterText, "(") {
		return nil, "", false
	}
	urlEnd := matchedDelimiter(afterText, '(', ')')
	if urlEnd < 0 {
		return nil, "", false
	}
	url, title := splitURLTitle(afterText[1:urlEnd])
	return &ast.Link{
		URL:     url,
		Title:   title,
		Content: ParseInlines(text),
	}, afterText[urlEnd+1:], true
}

// matchedDelimiter returns the index of the close byte balancing the open
// byte at position 0, or -1.
func matchedDelimiter(s string, open, close byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchImage(input string) (ast.Inline, string, bool) {
	closeBracket := strings.IndexByte(input[2:], ']')
	if closeBracket < 0 {
		return nil, "", false
	}
	alt := input[2 : 2+closeBracket]
	afterAlt := input[2+closeBracket+1:]
	if !strings.HasPrefix(afterAlt, "(") {
		return nil, "", false
	}
	closeParen := strings.IndexByte(afterAlt, ')')
	if closeParen < 0 {
		return nil, "", false
	}
	url, title := splitURLTitle(afterAlt[1:closeParen])
	return &ast.Image{
		URL:   url,
		Alt:   alt,
		Title: title,
	}, afterAlt[closeParen+1:], true
}

// splitURLTitle separates `url "title"` (or single-quoted) link targets.
func splitURLTitle(s string) (url, title string) {
	s = strings.TrimSpace(s)
	for _, q := range []byte{'"', '\''} {
		start := strings.IndexByte(s, q)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(s[start+1:], q)
		if end < 0 {
			continue
		}
		return strings.TrimSpace(s[:start]), s[start+1 : start+1+end]
	}
	return s, ""
}

func matchRawHTML(input string) (ast.Inline, string, bool) {
	close := strings.IndexByte(input, '>')
	if close < 0 {
		return nil, "", false
	}
	tag := input[1:close]
	if tag == "" {
		return nil, "", false
	}
	first, _ := utf8.DecodeRuneInString(tag)
	if !unicode.IsLetter(first) && first != '/' {
		return nil, "", false
	}
	return &ast.RawHTMLInline{HTML: input[:close+1]}, input[close+1:], true
}

// consumeText consumes plain characters up to the next position where a
// span could open, honoring backslash escapes.
func consumeText(input string) (text, rest string) {
	end := 0
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])

		if !isSpecial(r) {
			i += size
			end = i
			continue
		}

		// An escaped special character stays in the text, backslash and
		// all.
		if i > 0 && input[i-1] == '\\' {
			i += size
			end = i
			continue
		}

		stop := false
		var next rune
		if i+size < len(input) {
			next, _ = utf8.DecodeRuneInString(input[i+size:])
		}
		switch r {
		case '*', '_':
			stop = next != 0 && !unicode.IsSpace(next)
		case '~':
			stop = next == '~' || (next != 0 && !unicode.IsSpace(next))
		case '^':
			stop = next == '[' || (next != 0 && !unicode.IsSpace(next))
		case '{':
			stop = next == '#'
		case '!':
			stop = next == '['
		case '@':
			stop = next == '[' || unicode.IsLetter(next) || unicode.IsDigit(next)
		case '<':
			stop = unicode.IsLetter(next) || next == '/'
		case '\n':
			// Newlines stay in the text; appendText turns them into soft
			// and hard breaks.
			stop = false
		default:
			// [, $, ` always stop.
			stop = true
		}

		if stop {
			if end == 0 && i == 0 {
				return "", input
			}
			if i > end {
				end = i
			}
			return input[:end], input[end:]
		}
		i += size
		end = i
	}
	return input, ""
}

func isSpecial(r rune) bool {
	switch r {
	case '*', '_', '`', '$', '[', '!', '@', '^', '<', '~', '{', '\n':
		return true
	}
	return false
}
