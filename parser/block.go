package parser

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/acamark/acamark/ast"
)

// ParseBlocks parses source text into a sequence of blocks. Recognizers
// run in a fixed priority order on each line; container blocks re-enter
// ParseBlocks on their extracted inner text.
func ParseBlocks(text string) []ast.Block {
	lines := strings.Split(text, "\n")
	var blocks []ast.Block
	i := 0

	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")

		if trimmed == "" {
			i++
			continue
		}

		if b, ok := parseHeadingLine(trimmed); ok {
			blocks = append(blocks, b)
			i++
			continue
		}
		// Page-break and appendix markers look like thematic breaks, so
		// they go first.
		if matchPageBreak(strings.TrimSpace(line)) {
			blocks = append(blocks, &ast.PageBreak{})
			i++
			continue
		}
		if matchAppendixMarker(strings.TrimSpace(line)) {
			blocks = append(blocks, &ast.AppendixMarker{})
			i++
			continue
		}
		if matchThematicBreak(trimmed) {
			blocks = append(blocks, &ast.ThematicBreak{})
			i++
			continue
		}
		if strings.TrimSpace(line) == "[[toc]]" {
			blocks = append(blocks, &ast.TableOfContents{})
			i++
			continue
		}
		if b, n, ok := parseFencedCode(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseDisplayMath(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseEnvironment(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseBlockQuote(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseList(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseTable(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}
		if b, n, ok := parseDescriptionList(lines[i:]); ok {
			blocks = append(blocks, b)
			i += n
			continue
		}

		b, n := parseParagraph(lines[i:])
		blocks = append(blocks, b)
		i += n
	}

	return blocks
}

func parseHeadingLine(trimmed string) (ast.Block, bool) {
	level, content, ok := matchHeading(trimmed)
	if !ok {
		return nil, false
	}
	content, label := extractLabel(content)
	return &ast.Heading{
		Level:   level,
		Content: ParseInlines(content),
		Label:   label,
	}, true
}

func parseFencedCode(lines []string) (ast.Block, int, bool) {
	first := strings.TrimLeft(lines[0], " \t")
	fence, lang, ok := matchFenceStart(first)
	if !ok {
		return nil, 0, false
	}

	var content strings.Builder
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), fence) {
			return &ast.CodeBlock{
				Language: canonicalLanguage(lang),
				Content:  content.String(),
			}, i + 1, true
		}
		if content.Len() > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(lines[i])
	}

	// Unclosed fence, the rest of the input is code.
	return &ast.CodeBlock{
		Language: canonicalLanguage(lang),
		Content:  content.String(),
	}, len(lines), true
}

// canonicalLanguage maps a fence tag to the canonical chroma lexer name
// (lowercased), so aliases like "golang" and "go" collapse. Tags chroma
// does not know pass through unchanged.
func canonicalLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	if lex := lexers.Get(tag); lex != nil {
		return strings.ToLower(lex.Config().Name)
	}
	return tag
}

func parseDisplayMath(lines []string) (ast.Block, int, bool) {
	first := strings.TrimLeft(lines[0], " \t")
	if !strings.HasPrefix(first, "$$") {
		return nil, 0, false
	}

	afterOpen := first[2:]
	if end := strings.Index(afterOpen, "$$"); end >= 0 {
		_, label := extractLabel(afterOpen[end+2:])
		return &ast.DisplayMath{
			Content: afterOpen[:end],
			Label:   label,
		}, 1, true
	}

	var content strings.Builder
	content.WriteString(afterOpen)
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if end := strings.Index(line, "$$"); end >= 0 {
			content.WriteByte('\n')
			content.WriteString(line[:end])
			_, label := extractLabel(line[end+2:])
			return &ast.DisplayMath{
				Content: strings.TrimSpace(content.String()),
				Label:   label,
			}, i + 1, true
		}
		content.WriteByte('\n')
		content.WriteString(line)
	}

	// Unclosed math consumes to end of input, without a label.
	return &ast.DisplayMath{
		Content: strings.TrimSpace(content.String()),
	}, len(lines), true
}

func parseEnvironment(lines []string) (ast.Block, int, bool) {
	first := strings.TrimLeft(lines[0], " \t")
	keyword, label, ok := matchEnvironmentStart(first)
	if !ok {
		return nil, 0, false
	}

	kind := ast.ParseEnvironmentKind(keyword)
	var inner []string
	depth := 1

	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if trimmed == ":::" {
			depth--
			if depth == 0 {
				blocks, caption := parseEnvironmentContent(strings.Join(inner, "\n"), kind)
				return &ast.Environment{
					Kind:    kind,
					Label:   label,
					Blocks:  blocks,
					Caption: caption,
				}, i + 1, true
			}
		} else if strings.HasPrefix(trimmed, "::: ") {
			depth++
		}
		inner = append(inner, lines[i])
	}

	// Unclosed environment runs to end of input.
	blocks, caption := parseEnvironmentContent(strings.Join(inner, "\n"), kind)
	return &ast.Environment{
		Kind:    kind,
		Label:   label,
		Blocks:  blocks,
		Caption: caption,
	}, len(lines), true
}

// parseEnvironmentContent parses an environment body. In figures and
// tables a trailing paragraph is the caption when anything else precedes
// it.
func parseEnvironmentContent(content string, kind ast.EnvironmentKind) ([]ast.Block, []ast.Inline) {
	blocks := ParseBlocks(content)
	if kind == ast.KindFigure || kind == ast.KindTable {
		if len(blocks) > 1 {
			if p, ok := blocks[len(blocks)-1].(*ast.Paragraph); ok {
				return blocks[:len(blocks)-1], p.Content
			}
		}
	}
	return blocks, nil
}

func parseBlockQuote(lines []string) (ast.Block, int, bool) {
	if !strings.HasPrefix(strings.TrimLeft(lines[0], " \t"), ">") {
		return nil, 0, false
	}

	var quoted []string
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(trimmed, ">") {
			content := trimmed[1:]
			content = strings.TrimPrefix(content, " ")
			quoted = append(quoted, content)
			i++
		} else if trimmed == "" && i+1 < len(lines) &&
			strings.HasPrefix(strings.TrimLeft(lines[i+1], " \t"), ">") {
			quoted = append(quoted, "")
			i++
		} else {
			break
		}
	}

	return &ast.BlockQuote{Blocks: ParseBlocks(strings.Join(quoted, "\n"))}, i, true
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func sameListType(a, b listMarker) bool {
	if a.ordered || b.ordered {
		return a.ordered && b.ordered
	}
	// Unordered and checkbox items mix freely.
	return true
}

func parseList(lines []string) (ast.Block, int, bool) {
	trimmed := strings.TrimLeft(lines[0], " \t")
	indent := indentOf(lines[0])

	first, _, ok := matchListMarker(trimmed)
	if !ok {
		return nil, 0, false
	}

	var items []ast.ListItem
	i := 0

	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")
		curIndent := indentOf(line)

		if m, rest, ok := matchListMarker(trimmed); ok {
			if curIndent > indent || !sameListType(first, m) {
				break
			}

			itemLines := []string{rest}
			i++

			for i < len(lines) {
				next := lines[i]
				nextTrimmed := strings.TrimLeft(next, " \t")
				nextIndent := indentOf(next)

				if _, _, ok := matchListMarker(nextTrimmed); ok && nextIndent <= indent {
					break
				}

				if nextTrimmed == "" {
					// Look past blank lines: the item continues only if
					// the next non-blank line is indented deeper than the
					// list marker.
					j := i + 1
					for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
						j++
					}
					if j < len(lines) && indentOf(lines[j]) <= indent {
						break
					}
				}

				itemLines = append(itemLines, nextTrimmed)
				i++
			}

			item := ast.ListItem{Blocks: ParseBlocks(strings.Join(itemLines, "\n"))}
			if m.checkbox {
				checked := m.checked
				item.Checked = &checked
			}
			items = append(items, item)
		} else if curIndent > indent || trimmed == "" {
			i++
		} else {
			break
		}
	}

	if len(items) == 0 {
		return nil, 0, false
	}

	list := &ast.List{Ordered: first.ordered, Items: items}
	if first.ordered {
		list.Start = first.start
	}
	return list, i, true
}

func parseTable(lines []string) (ast.Block, int, bool) {
	if !strings.Contains(lines[0], "|") || len(lines) < 2 {
		return nil, 0, false
	}
	if !isTableDelimiter(lines[1]) {
		return nil, 0, false
	}

	headers := parseTableRow(lines[0])
	alignments := parseAlignments(lines[1])

	var rows [][][]ast.Inline
	i := 2
	for i < len(lines) {
		line := lines[i]
		if !strings.Contains(line, "|") || strings.TrimSpace(line) == "" {
			break
		}
		rows = append(rows, parseTableRow(line))
		i++
	}

	table := &ast.Table{
		Headers:    headers,
		Alignments: alignments,
		Rows:       rows,
	}

	// An optional Table:/Caption: trailer supplies caption and label.
	if i < len(lines) {
		next := strings.TrimSpace(lines[i])
		if strings.HasPrefix(next, "Table:") || strings.HasPrefix(next, "Caption:") {
			_, text, _ := strings.Cut(next, ":")
			text, label := extractLabel(strings.TrimSpace(text))
			table.Caption = ParseInlines(text)
			table.Label = label
			i++
		}
	}

	return table, i, true
}

func parseAlignments(line string) []ast.Alignment {
	inner := strings.Trim(strings.TrimSpace(line), "|")
	cells := strings.Split(inner, "|")
	alignments := make([]ast.Alignment, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			alignments = append(alignments, ast.AlignCenter)
		case right:
			alignments = append(alignments, ast.AlignRight)
		default:
			alignments = append(alignments, ast.AlignLeft)
		}
	}
	return alignments
}

func parseTableRow(line string) [][]ast.Inline {
	inner := strings.Trim(strings.TrimSpace(line), "|")
	cells := strings.Split(inner, "|")
	row := make([][]ast.Inline, 0, len(cells))
	for _, cell := range cells {
		row = append(row, ParseInlines(strings.TrimSpace(cell)))
	}
	return row
}

func parseDescriptionList(lines []string) (ast.Block, int, bool) {
	if len(lines) < 2 {
		return nil, 0, false
	}
	first := strings.TrimSpace(lines[0])
	second := strings.TrimSpace(lines[1])
	if strings.HasPrefix(first, ":") || !strings.HasPrefix(second, ":") {
		return nil, 0, false
	}

	var items []ast.DescriptionItem
	i := 0

	for i < len(lines) {
		termLine := strings.TrimSpace(lines[i])

		if termLine == "" {
			i++
			continue
		}
		if strings.HasPrefix(termLine, ":") {
			break
		}
		if i+1 >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i+1]), ":") {
			break
		}

		term := ParseInlines(termLine)
		i++

		var defLines []string
		for i < len(lines) {
			line := strings.TrimSpace(lines[i])
			if strings.HasPrefix(line, ":") {
				defLines = append(defLines, strings.TrimSpace(line[1:]))
				i++
			} else if line == "" {
				if i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), ":") {
					defLines = append(defLines, "")
					i++
				} else {
					break
				}
			} else {
				break
			}
		}

		items = append(items, ast.DescriptionItem{
			Term:       term,
			Definition: ParseBlocks(strings.Join(defLines, "\n")),
		})
	}

	if len(items) == 0 {
		return nil, 0, false
	}
	return &ast.DescriptionList{Items: items}, i, true
}

func parseParagraph(lines []string) (ast.Block, int) {
	var paraLines []string
	i := 0

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "~~~") ||
			strings.HasPrefix(trimmed, ":::") ||
			strings.HasPrefix(trimmed, "$$") ||
			strings.HasPrefix(trimmed, ">") ||
			trimmed == "---" || trimmed == "***" || trimmed == "___" ||
			trimmed == "[[toc]]" {
			break
		}
		if _, _, ok := matchListMarker(trimmed); ok {
			break
		}
		paraLines = append(paraLines, lines[i])
		i++
	}

	if i == 0 {
		i = 1
	}
	return &ast.Paragraph{Content: ParseInlines(strings.Join(paraLines, "\n"))}, i
}
