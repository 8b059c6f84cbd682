package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/acamark/acamark/ast"
)

// BuildLabelRegistry walks the numbered tree and maps every declared
// label to its display text and stable id. Label uniqueness is global:
// reusing a label anywhere in the document is fatal, whatever block types
// are involved.
func BuildLabelRegistry(doc *ast.Document, sections map[string]string, envs map[string]int) (map[string]ast.LabelInfo, error) {
	labels := make(map[string]ast.LabelInfo)
	err := collectBlockLabels(doc.Blocks, labels, sections, envs)
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func collectBlockLabels(blocks []ast.Block, labels map[string]ast.LabelInfo, sections map[string]string, envs map[string]int) error {
	insert := func(label, display string) error {
		if _, dup := labels[label]; dup {
			return &DuplicateLabelError{Label: label}
		}
		labels[label] = ast.LabelInfo{Display: display, ID: LabelToID(label)}
		return nil
	}

	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Heading:
			if n.Label == "" {
				continue
			}
			display := ast.InlinesText(n.Content)
			if num, ok := sections[n.Label]; ok {
				display = "Section " + num
			}
			if err := insert(n.Label, display); err != nil {
				return err
			}
		case *ast.DisplayMath:
			if n.Label == "" {
				continue
			}
			display := "(?)"
			if num, ok := envs[n.Label]; ok {
				display = fmt.Sprintf("(%d)", num)
			}
			if err := insert(n.Label, display); err != nil {
				return err
			}
		case *ast.Environment:
			if n.Label != "" {
				display := n.Kind.DisplayName()
				if num, ok := envs[n.Label]; ok {
					display = fmt.Sprintf("%s %d", n.Kind.DisplayName(), num)
				}
				if err := insert(n.Label, display); err != nil {
					return err
				}
			}
			if err := collectBlockLabels(n.Blocks, labels, sections, envs); err != nil {
				return err
			}
		case *ast.Table:
			if n.Label == "" {
				continue
			}
			display := "Table"
			if num, ok := envs[n.Label]; ok {
				display = fmt.Sprintf("Table %d", num)
			}
			if err := insert(n.Label, display); err != nil {
				return err
			}
		case *ast.BlockQuote:
			if err := collectBlockLabels(n.Blocks, labels, sections, envs); err != nil {
				return err
			}
		case *ast.List:
			for _, item := range n.Items {
				if err := collectBlockLabels(item.Blocks, labels, sections, envs); err != nil {
					return err
				}
			}
		case *ast.DescriptionList:
			for _, item := range n.Items {
				if err := collectBlockLabels(item.Definition, labels, sections, envs); err != nil {
					return err
				}
			}
		case *ast.Abstract:
			if err := collectBlockLabels(n.Blocks, labels, sections, envs); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveReferences rewrites every unresolved reference to carry its
// display text. An unknown label is fatal in strict mode, otherwise it
// resolves to a visible "??label" placeholder and logs a warning. A
// reference that names no label but matches a bibliography key becomes a
// textual citation instead; that rewrite is exempt from strict mode.
func ResolveReferences(doc ast.Document, labels map[string]ast.LabelInfo, bibliography map[string]ast.BibEntry, cfg Config, log *zap.SugaredLogger) (ast.Document, error) {
	t := transform{
		inline: func(in ast.Inline) (ast.Inline, error) {
			ref, ok := in.(*ast.Reference)
			if !ok {
				return in, nil
			}
			if info, ok := labels[ref.Label]; ok {
				display := info.Display
				return &ast.Reference{Label: ref.Label, Resolved: &display}, nil
			}
			if _, ok := bibliography[ref.Label]; ok {
				return &ast.Citation{Keys: []string{ref.Label}, Style: ast.Textual}, nil
			}
			if cfg.StrictReferences {
				return nil, &UnknownReferenceError{Label: ref.Label}
			}
			log.Warnw("unknown reference", "label", ref.Label)
			display := "??" + ref.Label
			return &ast.Reference{Label: ref.Label, Resolved: &display}, nil
		},
	}
	blocks, err := t.blocks(doc.Blocks)
	if err != nil {
		return ast.Document{}, err
	}
	doc.Blocks = blocks
	return doc, nil
}

// LabelToID derives the stable identifier for a label: every byte outside
// [A-Za-z0-9_-] becomes a dash.
func LabelToID(label string) string {
	out := []byte(label)
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			out[i] = '-'
		}
	}
	return string(out)
}
