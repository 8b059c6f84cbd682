package resolve

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
	"github.com/acamark/acamark/sliceedit"
)

// maxMacroIterations bounds the fixed-point loop so mutually recursive
// macros cannot expand forever.
const maxMacroIterations = 10

// ExpandMacros rewrites every math body in the document, substituting the
// metadata's macro templates. Expansion repeats until nothing changes or
// the iteration cap is hit; hitting the cap logs a warning and keeps the
// partial expansion.
func ExpandMacros(doc ast.Document, log *zap.SugaredLogger) ast.Document {
	macros := doc.Metadata.Macros
	if len(macros) == 0 {
		return doc
	}

	t := transform{
		math: func(content string) string {
			return expandMathMacros(content, macros, log)
		},
	}
	blocks, _ := t.blocks(doc.Blocks)
	doc.Blocks = blocks
	return doc
}

func expandMathMacros(content string, macros map[string]ast.Macro, log *zap.SugaredLogger) string {
	// Sorted name order keeps expansion deterministic.
	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}
	sort.Strings(names)

	result := content

	for iter := 0; iter < maxMacroIterations; iter++ {
		changed := false
		for _, name := range names {
			expanded := expandSingleMacro(result, name, macros[name])
			if expanded != result {
				result = expanded
				changed = true
			}
		}
		if !changed {
			return result
		}
	}

	log.Warnw("macro expansion did not converge, keeping partial result",
		"iterations", maxMacroIterations)
	return result
}

// expandSingleMacro substitutes every invocation of one macro, queuing the
// replacements as offset edits and applying them in one pass.
func expandSingleMacro(content, name string, m ast.Macro) string {
	pattern := `\` + name
	buf := sliceedit.NewBufferString(content)
	edited := false

	pos := 0
	for pos < len(content) {
		hit := strings.Index(content[pos:], pattern)
		if hit < 0 {
			break
		}
		start := pos + hit
		afterName := start + len(pattern)

		// A letter right after the name belongs to a longer macro name,
		// not to an invocation of this one.
		if afterName < len(content) && isLetter(content[afterName]) {
			pos = afterName
			continue
		}

		if m.ArgCount == 0 {
			// A brace group right after a zero-argument macro means the
			// braces belong to the author, not the macro; leave it alone.
			if afterName < len(content) && content[afterName] == '{' {
				pos = afterName
				continue
			}
			buf.Replace(start, afterName, m.Template)
			edited = true
			pos = afterName
			continue
		}

		args, end, ok := matchMacroArgs(content, afterName, m.ArgCount)
		if !ok {
			// Arguments do not parse, keep the invocation as written.
			pos = afterName
			continue
		}
		buf.Replace(start, end, substituteArgs(m.Template, args))
		edited = true
		pos = end
	}

	if !edited {
		return content
	}
	return buf.String()
}

// matchMacroArgs reads count consecutive brace-matched groups starting at
// offset pos, returning the captured texts and the offset past the last
// group.
func matchMacroArgs(content string, pos, count int) (args []string, end int, ok bool) {
	for n := 0; n < count; n++ {
		for pos < len(content) && (content[pos] == ' ' || content[pos] == '\t' || content[pos] == '\n') {
			pos++
		}
		if pos >= len(content) || content[pos] != '{' {
			return nil, 0, false
		}

		depth := 0
		close := -1
		for i := pos; i < len(content); i++ {
			switch content[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					close = i
				}
			}
			if close >= 0 {
				break
			}
		}
		if close < 0 {
			return nil, 0, false
		}

		args = append(args, content[pos+1:close])
		pos = close + 1
	}
	return args, pos, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func substituteArgs(template string, args []string) string {
	result := template
	for i, arg := range args {
		placeholder := "#" + strconv.Itoa(i+1)
		result = strings.ReplaceAll(result, placeholder, arg)
	}
	return result
}
