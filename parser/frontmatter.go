package parser

import (
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/acamark/acamark/ast"
)

const frontMatterFence = "+++"

// rawFrontMatter mirrors the TOML surface of the front-matter block.
// Scalars the grammar leaves open (bibliography may be a bare path or an
// inline table with a path key) are decoded loosely and coerced below.
type rawFrontMatter struct {
	Title        string            `toml:"title"`
	Subtitle     string            `toml:"subtitle"`
	Author       string            `toml:"author"`
	Authors      []string          `toml:"authors"`
	Date         string            `toml:"date"`
	Keywords     []string          `toml:"keywords"`
	Institution  string            `toml:"institution"`
	Department   string            `toml:"department"`
	Advisor      string            `toml:"advisor"`
	Language     string            `toml:"language"`
	Bibliography any               `toml:"bibliography"`
	Macros       map[string]string `toml:"macros"`
}

// parseFrontMatter strips and decodes a leading +++ block. A source without
// one yields empty metadata and the untouched input. A block that is opened
// but never closed, or whose TOML does not decode, is a SyntaxError.
func parseFrontMatter(filename, input string) (ast.Metadata, string, error) {
	trimmed := strings.TrimLeft(input, " \t\r\n")
	if !strings.HasPrefix(trimmed, frontMatterFence) {
		return ast.Metadata{}, input, nil
	}

	// Lines skipped before the block, for error positions.
	lineOffset := strings.Count(input[:len(input)-len(trimmed)], "\n")

	afterOpen := trimmed[len(frontMatterFence):]
	closePos := strings.Index(afterOpen, "\n"+frontMatterFence)
	if closePos < 0 {
		return ast.Metadata{}, "", &SyntaxError{
			Filename: filename,
			Line:     lineOffset + 1,
			Column:   1,
			Msg:      "unclosed front matter (missing closing +++)",
		}
	}

	tomlSrc := afterOpen[:closePos]
	body := afterOpen[closePos+1+len(frontMatterFence):]
	body = strings.TrimPrefix(body, "\n")

	var raw rawFrontMatter
	if err := toml.Unmarshal([]byte(tomlSrc), &raw); err != nil {
		se := &SyntaxError{
			Filename: filename,
			Line:     lineOffset + 1,
			Column:   1,
			Msg:      "invalid front matter: " + err.Error(),
		}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			se.Line = lineOffset + 1 + row
			se.Column = col
			se.Msg = "invalid front matter: " + de.String()
		}
		return ast.Metadata{}, "", se
	}

	return convertFrontMatter(raw), body, nil
}

func convertFrontMatter(raw rawFrontMatter) ast.Metadata {
	meta := ast.Metadata{
		Title:       raw.Title,
		Subtitle:    raw.Subtitle,
		Authors:     raw.Authors,
		Date:        raw.Date,
		Keywords:    raw.Keywords,
		Institution: raw.Institution,
		Department:  raw.Department,
		Advisor:     raw.Advisor,
		Lang:        raw.Language,
	}

	if len(meta.Authors) == 0 && raw.Author != "" {
		meta.Authors = []string{raw.Author}
	}

	switch b := raw.Bibliography.(type) {
	case string:
		meta.BibliographyPath = b
	case map[string]any:
		if p, ok := b["path"].(string); ok {
			meta.BibliographyPath = p
		}
	}

	if len(raw.Macros) > 0 {
		meta.Macros = make(map[string]ast.Macro, len(raw.Macros))
		for name, template := range raw.Macros {
			meta.Macros[name] = ast.Macro{
				ArgCount: countMacroArgs(template),
				Template: template,
			}
		}
	}

	return meta
}

// countMacroArgs returns the highest #N placeholder in a macro template.
func countMacroArgs(template string) int {
	max := 0
	for i := 0; i+1 < len(template); i++ {
		if template[i] != '#' {
			continue
		}
		d := template[i+1]
		if d >= '0' && d <= '9' {
			if n := int(d - '0'); n > max {
				max = n
			}
		}
	}
	return max
}
